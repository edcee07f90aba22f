// internal/domain/models/skill.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Proficiency bounds and default for Skill.Proficiency.
const (
	ProficiencyMin     = 1
	ProficiencyMax     = 100
	ProficiencyDefault = 50
)

// Skill is a single entry of the skills matrix.
type Skill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Proficiency int                `bson:"proficiency" json:"proficiency"`
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
