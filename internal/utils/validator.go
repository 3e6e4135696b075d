// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var mobileRegex = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// Allowed values of the enum tags, kept in step with internal/models.
var enumTags = map[string][]string{
	"payment_method":   {"COD", "UPI", "CreditCard", "DebitCard"},
	"address_type":     {"Home", "Work"},
	"order_status":     {"placed", "accepted", "processing", "shipped", "delivered", "cancelled"},
	"complaint_type":   {"Delay", "Damaged", "Wrong Item", "Payment Issue", "Other"},
	"complaint_status": {"open", "in_progress", "resolved", "rejected"},
}

func init() {
	validate = validator.New()

	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("mobile", validateMobile)
	for tag, values := range enumTags {
		validate.RegisterValidation(tag, oneOf(values))
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateMobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "mobile":
		return "Mobile number must be 10 to 13 digits"
	default:
		if values, ok := enumTags[e.Tag()]; ok {
			return e.Field() + " must be one of: " + strings.Join(values, ", ")
		}
		return e.Field() + " is invalid"
	}
}
