// Package token provides the Redis-backed bearer token store.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// TokenRedis implements usecase.TokenRepository using Redis.
// Each record lives under <prefix>:<id> with a TTL matching its expiry;
// <prefix>:user:<userID> is a set of the user's token ids.
type TokenRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// Compile-time check to ensure TokenRedis implements TokenRepository.
var _ usecase.TokenRepository = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// tokenKey returns the Redis key for a token.
func (r *TokenRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userTokensKey returns the Redis key for a user's token set.
func (r *TokenRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create stores the record and indexes it under its user in one transaction.
func (r *TokenRedis) Create(ctx context.Context, token *entity.Token) error {
	if token.IsExpired(r.now()) {
		return errors.New("token already expired")
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	ttl := token.ExpiresAt.Sub(r.now())

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.tokenKey(token.ID), data, ttl)
		pipe.SAdd(ctx, r.userTokensKey(token.UserID), token.ID)
		// Tokens share one TTL, so the newest one outlives the rest
		pipe.Expire(ctx, r.userTokensKey(token.UserID), ttl)
		return nil
	})
	return err
}

// Exists reports whether id is a live token of userID.
func (r *TokenRedis) Exists(ctx context.Context, id string, userID uint) (bool, error) {
	data, err := r.client.Get(ctx, r.tokenKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	var token entity.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return token.UserID == userID && !token.IsExpired(r.now()), nil
}

// DeleteAllByUserID deletes every token of the user and the index set.
func (r *TokenRedis) DeleteAllByUserID(ctx context.Context, userID uint) error {
	setKey := r.userTokensKey(userID)
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.tokenKey(id))
	}
	keys = append(keys, setKey)
	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired is a no-op; Redis expires records via TTL.
func (r *TokenRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
