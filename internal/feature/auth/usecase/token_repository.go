package usecase

import (
	"context"

	"account_backend/internal/feature/auth/domain/entity"
)

// TokenRepository abstracts the persistence layer for bearer token records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TokenRepository interface {
	// Create persists a new token record.
	Create(ctx context.Context, token *entity.Token) error

	// Exists reports whether an unexpired record with id exists for userID.
	Exists(ctx context.Context, id string, userID uint) (bool, error)

	// DeleteAllByUserID removes every token of the user. Deleting zero rows is not an error.
	DeleteAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes expired records and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
