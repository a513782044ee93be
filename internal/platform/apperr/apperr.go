// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the Pokédex API.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeMissingField   = "MISSING_FIELD"
	CodeTooManyTypes   = "TOO_MANY_TYPES"
	CodeInvalidType    = "INVALID_TYPE"
	CodeInvalidID      = "INVALID_ID"
	CodeValidation     = "VALIDATION_ERROR"
	CodeDuplicate      = "DUPLICATE"
	CodeNotFound       = "NOT_FOUND"
	CodePathNotFound   = "PATH_NOT_FOUND"
	CodeNoData         = "NO_DATA"
	CodeIO             = "IO_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInternal       = "INTERNAL_ERROR"
	MessageInternal    = "Internal Server Error"
	MessagePathMissing = "Path not found"
)

// AppError is the canonical error type for the Pokédex API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "DUPLICATE").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another [*AppError] by Code, so callers can compare against
// the constructors below with [errors.Is].
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// # Client Errors (4xx)

// MissingField creates a 400 [AppError] for absent required data.
func MissingField(details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeMissingField,
		Message:    "Missing required data.",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// TooManyTypes creates a 400 [AppError] for a record with more than two types.
func TooManyTypes() *AppError {
	return &AppError{
		Code:       CodeTooManyTypes,
		Message:    "Pokémon can only have one or two types.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidType creates a 400 [AppError] for a type outside the allowed set.
func InvalidType(invalid ...string) *AppError {
	details := make([]FieldError, 0, len(invalid))
	for _, name := range invalid {
		details = append(details, FieldError{Field: "types", Message: fmt.Sprintf("%q is not a known type", name)})
	}
	return &AppError{
		Code:       CodeInvalidType,
		Message:    "Pokémon's type is invalid.",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidID creates a 400 [AppError] for an id that is not a positive integer.
func InvalidID(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidID,
		Message:    "Pokémon's id must be a positive integer.",
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Pokemon") // Returns "Pokemon not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// PathNotFound creates the 404 [AppError] returned for unmatched routes.
func PathNotFound() *AppError {
	return &AppError{
		Code:       CodePathNotFound,
		Message:    MessagePathMissing,
		HTTPStatus: http.StatusNotFound,
	}
}

// Duplicate creates a 409 [AppError] for unique-constraint violations.
func Duplicate(msg string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// NoData creates a 500 [AppError] for an empty or unavailable catalog.
func NoData() *AppError {
	return &AppError{
		Code:       CodeNoData,
		Message:    "No Pokémon data available",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IO creates a 500 [AppError] for a document that could not be written.
func IO(cause error) *AppError {
	return &AppError{
		Code:       CodeIO,
		Message:    MessageInternal,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    MessageInternal,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
