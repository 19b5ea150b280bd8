// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// tokenGorm is a relational implementation of the TokenRepository interface.
type tokenGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check to ensure tokenGorm implements TokenRepository.
var _ usecase.TokenRepository = (*tokenGorm)(nil)

// NewTokenGorm creates a new instance of tokenGorm.
func NewTokenGorm(db *gorm.DB) *tokenGorm {
	return &tokenGorm{db: db, now: time.Now}
}

// Create persists a new token record.
func (r *tokenGorm) Create(ctx context.Context, token *entity.Token) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(TokenModelFromEntity(token)).Error
}

// Exists reports whether an unexpired token id belongs to userID.
func (r *tokenGorm) Exists(ctx context.Context, id string, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TokenModel{}).
		Where("id = ? AND user_id = ? AND expires_at > ?", id, userID, r.now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteAllByUserID removes every token of the user.
func (r *tokenGorm) DeleteAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&TokenModel{}).Error
}

// DeleteExpired removes all expired tokens from storage.
func (r *tokenGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&TokenModel{})
	return result.RowsAffected, result.Error
}
