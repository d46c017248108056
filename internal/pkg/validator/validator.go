package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonName)
	_ = validate.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
}

// Validate struct fields. Returns field (json name) -> failed tag, or nil.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "min":
		return "ensure this value is at least " + fe.Param()
	case "hexcolor6":
		return "enter a color in #RRGGBB format"
	case "slug":
		return "enter a valid slug"
	case "username":
		return "username may contain only letters, digits and @/./+/-/_"
	}
	return fe.Tag()
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
