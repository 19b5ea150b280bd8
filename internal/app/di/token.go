package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "account_backend/internal/feature/auth/adapters"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/token"
)

// tokenKeyPrefix namespaces token records in Redis.
const tokenKeyPrefix = "token"

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the relational store.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.TokenRepository {
	if rdb != nil {
		return token.NewTokenRedis(rdb, tokenKeyPrefix)
	}
	return authadapters.NewTokenGorm(db)
}
