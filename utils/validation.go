package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared request validator instance
var Validate = validator.New()

// FormatValidationErrors flattens validator errors into a field -> message
// map for the standard validation error response.
func FormatValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["body"] = "Invalid request body!"
		return fieldErrors
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = fmt.Sprintf("%s is required!", fe.Field())
		case "email":
			fieldErrors[field] = fmt.Sprintf("%s must be a valid email address!", fe.Field())
		case "gt":
			fieldErrors[field] = fmt.Sprintf("%s must be greater than %s!", fe.Field(), fe.Param())
		case "oneof":
			fieldErrors[field] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
		default:
			fieldErrors[field] = fmt.Sprintf("%s is invalid!", fe.Field())
		}
	}
	return fieldErrors
}
