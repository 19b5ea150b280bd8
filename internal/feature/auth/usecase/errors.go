// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"fmt"

	"account_backend/internal/shared/apperr"
)

var (
	// ErrLoginRequired is returned when an operation needs a session and none is given.
	ErrLoginRequired = fmt.Errorf("%w: login required", apperr.ErrUnauthenticated)

	// ErrForeignLogout is returned when a user tries to log out another user.
	ErrForeignLogout = fmt.Errorf("%w: cannot log out another user", apperr.ErrUnauthorized)
)
