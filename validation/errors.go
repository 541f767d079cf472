// Package validation converts untrusted request input into sanitized,
// constraint-satisfying values, or rejects it with a field-level reason.
// All functions are pure and side-effect free; sanitizers never fail on
// empty input, only presence-required validators enforce minimum length.
package validation

import "fmt"

// Code classifies why a field was rejected
type Code string

const (
	CodeInvalidFormat Code = "invalid_format"
	CodeWeakPassword  Code = "weak_password"
	CodeInvalidEnum   Code = "invalid_enum"
	CodeUnsafeURL     Code = "unsafe_url"
)

// FieldError is a rejection attributable to exactly one field and one
// reason, so callers can surface actionable per-field errors.
type FieldError struct {
	Field   string
	Code    Code
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is implements errors.Is matching on field and code
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Field == "" || e.Field == t.Field)
}

func invalidFormat(field, message string) *FieldError {
	return &FieldError{Field: field, Code: CodeInvalidFormat, Message: message}
}

func weakPassword(message string) *FieldError {
	return &FieldError{Field: "password", Code: CodeWeakPassword, Message: message}
}

func invalidEnum(field, message string) *FieldError {
	return &FieldError{Field: field, Code: CodeInvalidEnum, Message: message}
}

func unsafeURL(field, message string) *FieldError {
	return &FieldError{Field: field, Code: CodeUnsafeURL, Message: message}
}
