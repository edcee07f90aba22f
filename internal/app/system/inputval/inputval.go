// Package inputval validates decoded request payloads with
// go-playground/validator and turns failures into client-facing messages.
//
// Struct fields use `validate` tags for rules and an optional `label` tag
// for the name shown in messages (falls back to the json name).
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects every failed rule of one Validate call.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Err returns an apierr validation error carrying the first message, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apierr.Validation("%s", r.First())
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(fieldLabel)
		_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = v.RegisterValidation("skillcategory", func(fl validator.FieldLevel) bool {
			return models.IsSkillCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("settingtype", func(fl validator.FieldLevel) bool {
			return models.IsSettingType(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func fieldLabel(f reflect.StructField) string {
	if l := f.Tag.Get("label"); l != "" {
		return l
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}
	return f.Name
}

// Validate runs the struct's tag rules. s must be a struct or pointer to one.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: "Invalid input."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String
	// For alternatives like "httpurl|len=0" the first rule names the failure.
	tag, _, _ := strings.Cut(fe.Tag(), "|")
	switch tag {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be an absolute http(s) URL."
	case "skillcategory":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(models.SkillCategories, ", "))
	case "settingtype":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(models.SettingTypes, ", "))
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min", "gte":
		if isString && fe.Param() == "1" {
			return label + " is required."
		}
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid."
	}
}

// IsValidEmail accepts a bare addr-spec (no display name, no surrounding space).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsValidHTTPURL accepts absolute http and https URLs with a host.
func IsValidHTTPURL(s string) bool {
	return urlutil.IsValidAbsHTTPURL(strings.TrimSpace(s))
}
