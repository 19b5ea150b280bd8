// Package usecase implements the business logic for the users feature.
package usecase

import (
	"fmt"

	"account_backend/internal/shared/apperr"
)

var (
	// ErrLoginRequired is returned when an operation needs a principal and none is given.
	ErrLoginRequired = fmt.Errorf("%w: login required", apperr.ErrUnauthenticated)

	// ErrNotProfileOwner is returned when a user targets another user's profile.
	ErrNotProfileOwner = fmt.Errorf("%w: profile belongs to another user", apperr.ErrForbidden)
)
