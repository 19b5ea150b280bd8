// Package domain defines domain-level errors for the auth feature.
package domain

import (
	"fmt"

	"account_backend/internal/shared/apperr"
)

// ErrInvalidCredentials indicates that no user matches the email and password.
// Unknown email and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)
