// Package apperr defines the error taxonomy shared by every feature.
// Feature packages wrap these sentinels with %w so that the transport layer
// can map any error to a status code with errors.Is alone.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates rejected credentials or a cross-account request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnauthenticated indicates that no valid session accompanies the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates an authenticated caller lacking role or ownership.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates that no record exists for the requested id.
	ErrNotFound = errors.New("not found")
)

// FieldError describes a single violated rule on a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError enumerates every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

// Is reports ErrValidation as a match so callers need not type-assert.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Violation is one failed rule as returned in error envelopes.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ByField groups violations per field, the shape returned in error envelopes.
func (e *ValidationError) ByField() map[string][]Violation {
	out := make(map[string][]Violation, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], Violation{Rule: f.Rule, Message: f.Message})
	}
	return out
}

// Unique builds the field error reported for a uniqueness constraint violation.
func Unique(field string) FieldError {
	return FieldError{Field: field, Rule: "unique", Message: field + " has already been taken"}
}

// InvalidBody reports a request body that could not be decoded.
func InvalidBody() error {
	return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "json", Message: "request body must be a valid JSON object"}}}
}
