// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate runs struct-tag validation (go-playground/validator) and
// converts failures into [apperr.FieldError] values keyed by JSON field name.
//
// # Architecture
//
// This package is used in the service layer and at ingestion boundaries, never
// in storage. It ensures that business logic only operates on well-formed data.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	once     sync.Once
	instance *validator.Validate
)

// V returns the shared validator instance.
//
// # Concurrency
//
// The instance caches struct metadata and is safe for concurrent use.
func V() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names ("name", "types") instead of Go field names.
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates value against its `validate` tags.
//
// It returns nil when every rule passes. Failures are returned in field
// declaration order.
func Struct(value any) []apperr.FieldError {
	err := V().Struct(value)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apperr.FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldErr.Field(),
			Message: describe(fieldErr),
		})
	}
	return details
}

// describe renders a short human message for a single rule failure.
func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Maximum %s", fieldErr.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fieldErr.Tag())
	}
}
