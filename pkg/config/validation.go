package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct-level constraints are declared with validate tags and checked with
// go-playground/validator; backend-specific checks (database, storage) are
// delegated to the owning packages.
func Validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid configuration: %s", formatValidationErrors(validationErrors))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if err := cfg.Storage.Validate(); err != nil {
		return fmt.Errorf("invalid storage configuration: %w", err)
	}

	return nil
}

// formatValidationErrors renders validator errors as a readable list.
func formatValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, "; ")
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Namespace()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fieldErr.Param(), fieldErr.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address, got %q", field, fieldErr.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}
