package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError_Empty(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewValidationError(nil))
	assert.NoError(t, NewValidationError([]FieldError{}))
}

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	err := NewValidationError([]FieldError{Unique("email")})
	require.Error(t, err)

	wrapped := fmt.Errorf("create user: %w", err)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.NotErrorIs(t, wrapped, ErrNotFound)

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "unique", ve.Fields[0].Rule)
}

func TestValidationError_ByField(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{Fields: []FieldError{
		{Field: "password", Rule: "min", Message: "password must be at least 8 characters"},
		{Field: "password", Rule: "uppercase", Message: "password must contain an uppercase letter"},
		Unique("username"),
	}}

	got := ve.ByField()

	assert.Len(t, got["password"], 2)
	assert.Equal(t, "min", got["password"][0].Rule)
	assert.Equal(t, "uppercase", got["password"][1].Rule)
	assert.Equal(t, []Violation{{Rule: "unique", Message: "username has already been taken"}}, got["username"])
	assert.Contains(t, ve.Error(), "validation failed: ")
}
