// Package validation adapts go-playground/validator to echo. Failures come
// back as *domain.ValidationError keyed by JSON field name so handlers and the
// error handler can report them field by field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// EchoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type EchoValidator struct {
	v *validator.Validate
}

// New returns an EchoValidator ready to be assigned to echo.Echo.Validator.
func New() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &EchoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *EchoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldError(fe)
		}
	}
	return domain.NewValidationError(fields)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
