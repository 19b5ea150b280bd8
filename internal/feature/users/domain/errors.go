// Package domain defines domain-level errors for the users feature.
package domain

import (
	"errors"
	"fmt"

	"account_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrDuplicateUser is matched by every *DuplicateError.
	ErrDuplicateUser = errors.New("user already exists")
)

// DuplicateError reports a unique constraint violation and the fields that
// collide with another user. Fields may be empty when the store did not
// reveal which constraint fired.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDuplicateUser, e.Fields)
}

// Is matches ErrDuplicateUser.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateUser
}

// AsValidation converts a duplicate into the field-level validation error
// reported to clients.
func (e *DuplicateError) AsValidation() error {
	fields := e.Fields
	if len(fields) == 0 {
		fields = []string{"username", "email"}
	}
	out := make([]apperr.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, apperr.Unique(f))
	}
	return apperr.NewValidationError(out)
}
