package project

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	oerrors "github.com/limgen/cli/internal/errors"
)

var projectNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
		return projectNameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
			return false
		}
		clean := path.Clean(p)
		return clean != ".." && !strings.HasPrefix(clean, "../")
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return fieldNames[f.Name]
	})
	return v
}

// fieldNames maps Options fields to their external names.
var fieldNames = map[string]string{
	"Name":      "projectName",
	"Type":      "projectType",
	"Framework": "framework",
	"Port":      InputPort,
	"OutputDir": InputOutputDir,
}

// ValidateName checks a project name without building full Options.
func ValidateName(name string) error {
	if !projectNameRegex.MatchString(name) {
		return &oerrors.UnsupportedConfigurationError{
			Field:  "projectName",
			Value:  name,
			Reason: "must start with a letter and contain only letters, digits, '-' or '_'",
		}
	}
	return nil
}

// validateScalars checks field formats that do not depend on the project type.
func validateScalars(opts Options) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &oerrors.UnsupportedConfigurationError{
		Field:  fe.Field(),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reasonFor(fe),
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "projectname":
		return "must start with a letter and contain only letters, digits, '-' or '_'"
	case "relpath":
		return "must be a relative path inside the application"
	case "min", "max":
		return "must be between 1 and 65535"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
