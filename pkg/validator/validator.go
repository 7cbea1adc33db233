package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Patterns for the institution-specific identifiers used on the
// registration and login forms.
var (
	// e.g. F/ND/22/3210113 or F/HND/23/1020044
	matricPattern = regexp.MustCompile(`^[A-Za-z]{1,3}/[A-Za-z]{2,4}/\d{2}/\d{5,9}$`)
	// e.g. YCT-1042 or STF/0231
	staffIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+([-/][A-Za-z0-9]+)*$`)
)

const schoolDomain = "@yabatech.edu.ng"

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Use JSON tag names instead of struct field names for error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	// Portal-specific tags
	_ = v.RegisterValidation("matric", func(fl validator.FieldLevel) bool {
		return matricPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("staffid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) >= 3 && staffIDPattern.MatchString(s)
	})
	_ = v.RegisterValidation("schoolemail", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), schoolDomain)
	})

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	var messages []string
	for _, err := range errs {
		var message string
		field := strings.ToLower(err.Field())

		switch err.Tag() {
		case "required", "required_if", "required_unless":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		case "matric":
			message = fmt.Sprintf("%s must be a valid matriculation number", field)
		case "staffid":
			message = fmt.Sprintf("%s must be a valid staff ID", field)
		case "schoolemail":
			message = fmt.Sprintf("%s must be a %s address", field, schoolDomain)
		default:
			message = fmt.Sprintf("%s failed validation for %s", field, err.Tag())
		}
		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, "; "))
}
