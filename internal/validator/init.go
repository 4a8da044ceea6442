package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateStruct runs the shared validator against a request struct. On
// failure the returned error is validator.ValidationErrors.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
