// Package jwtmw signs and verifies bearer tokens and provides the Gin
// middleware that authenticates requests with them.
package jwtmw

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"account_backend/internal/shared/apperr"
)

// ErrInvalidToken is returned for any bearer string that fails verification.
var ErrInvalidToken = fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)

// Identity is what a verified bearer string asserts.
type Identity struct {
	UserID  uint
	TokenID string
}

// Generator issues and parses HS256 bearer tokens.
// sub carries the user id and jti the id of the stored token record.
type Generator struct {
	secret []byte
	now    func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret.
func NewGenerator(secret string) *Generator {
	return &Generator{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue creates a signed token for the record tokenID of userID.
func (g *Generator) Issue(userID uint, tokenID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(g.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature, algorithm and expiry of tokenStr.
func (g *Generator) Parse(tokenStr string) (Identity, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil || sub == 0 || claims.ID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: uint(sub), TokenID: claims.ID}, nil
}
