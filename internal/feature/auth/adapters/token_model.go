package adapters

import (
	"time"

	"account_backend/internal/feature/auth/domain/entity"
	usersentity "account_backend/internal/feature/users/domain/entity"
)

// TokenModel is the GORM model for the tokens table.
// Rows are removed with their user through the foreign key.
type TokenModel struct {
	ID        string           `gorm:"primaryKey;size:64"`
	UserID    uint             `gorm:"index;not null"`
	User      usersentity.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"not null"`
	ExpiresAt time.Time        `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
