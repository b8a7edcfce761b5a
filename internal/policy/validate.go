package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for policy validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single invalid policy field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError collects every invalid field of a policy.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s %s", fe.Field, fe.Message)
	}
	return "invalid policy: " + strings.Join(parts, "; ")
}

// Validate checks ranges, reference colours and cut point ordering.
func (p Policy) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid policy: %w", err)
	}

	verr := &ValidationError{}
	for _, e := range validationErrors {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   strings.TrimPrefix(e.Namespace(), "Policy."),
			Message: formatValidationMessage(e),
			Value:   e.Value(),
		})
	}
	return verr
}

// formatValidationMessage creates a human-readable message from a validator error.
func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "hexcolor":
		return "must be a hex colour (e.g. #121212)"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
