// internal/domain/models/skillcategories.go
package models

// Canonical skill category identifiers, stored in Skill.Category.
const (
	SkillCategoryML       = "ml"
	SkillCategoryFrontend = "frontend"
	SkillCategoryBackend  = "backend"
	SkillCategoryDatabase = "database"
	SkillCategoryTools    = "tools"
	SkillCategoryOther    = "other"
)

// SkillCategories is the full set of allowed categories. Validation tags and
// the collection schema enum are both derived from it.
var SkillCategories = []string{
	SkillCategoryML,
	SkillCategoryFrontend,
	SkillCategoryBackend,
	SkillCategoryDatabase,
	SkillCategoryTools,
	SkillCategoryOther,
}

// IsSkillCategory reports whether c is one of SkillCategories.
func IsSkillCategory(c string) bool {
	for _, v := range SkillCategories {
		if v == c {
			return true
		}
	}
	return false
}
