package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
	usersentity "account_backend/internal/feature/users/domain/entity"
	usersusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/shared/apperr"
	"account_backend/internal/shared/authctx"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt verification.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserFinder loads users for authentication.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*usersentity.User, error)
	FindByID(ctx context.Context, id uint) (*usersentity.User, error)
}

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(hash, password string) bool
}

// TokenIssuer signs the bearer string for a stored token record.
type TokenIssuer interface {
	Issue(userID uint, tokenID string, expiresAt time.Time) (string, error)
}

// ProfileUpdater applies a partial update to a user.
type ProfileUpdater interface {
	Update(ctx context.Context, id uint, in usersusecase.UpdateInput) (usersentity.UserView, error)
}

// AuthUsecase implements login, logout and the self-service profile operations.
type AuthUsecase struct {
	users    UserFinder
	hasher   PasswordVerifier
	tokens   TokenRepository
	issuer   TokenIssuer
	profiles ProfileUpdater
	ttl      time.Duration

	now     func() time.Time
	tokenID func() (string, error)
}

// NewAuthUsecase creates a new AuthUsecase. Issued tokens live for ttl.
func NewAuthUsecase(users UserFinder, hasher PasswordVerifier, tokens TokenRepository, issuer TokenIssuer, profiles ProfileUpdater, ttl time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		issuer:   issuer,
		profiles: profiles,
		ttl:      ttl,
		now:      time.Now,
		tokenID:  newTokenID,
	}
}

// Login authenticates the user and creates one token record.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (TokenResult, error) {
	if err := in.Validate(); err != nil {
		return TokenResult{}, err
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return TokenResult{}, fmt.Errorf("find user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	// Verify runs even for unknown emails.
	if ok := u.hasher.Verify(hash, in.Password); !ok || user == nil {
		return TokenResult{}, domain.ErrInvalidCredentials
	}

	id, err := u.tokenID()
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to generate token id: %w", err)
	}
	now := u.now()
	token := &entity.Token{
		ID:        id,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return TokenResult{}, fmt.Errorf("store token: %w", err)
	}

	signed, err := u.issuer.Issue(user.ID, token.ID, token.ExpiresAt)
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return TokenResult{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(u.ttl / time.Second),
	}, nil
}

// Logout revokes every token of userID. Only the owner may log out.
func (u *AuthUsecase) Logout(ctx context.Context, p *authctx.Principal, userID uint) error {
	if p == nil {
		return ErrLoginRequired
	}
	if p.UserID != userID {
		return ErrForeignLogout
	}
	if err := u.tokens.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// ShowDetails returns the view of the authenticated user.
func (u *AuthUsecase) ShowDetails(ctx context.Context, p *authctx.Principal) (usersentity.UserView, error) {
	if p == nil {
		return usersentity.UserView{}, ErrLoginRequired
	}
	user, err := u.users.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return usersentity.UserView{}, ErrLoginRequired
		}
		return usersentity.UserView{}, err
	}
	return user.View(), nil
}

// UpdateSelf applies a partial update to the authenticated user.
func (u *AuthUsecase) UpdateSelf(ctx context.Context, p *authctx.Principal, in usersusecase.UpdateInput) (usersentity.UserView, error) {
	if p == nil {
		return usersentity.UserView{}, ErrLoginRequired
	}
	return u.profiles.Update(ctx, p.UserID, in)
}

// PurgeExpired removes expired token records from stores that do not expire
// them on their own.
func (u *AuthUsecase) PurgeExpired(ctx context.Context) (int64, error) {
	return u.tokens.DeleteExpired(ctx)
}

// newTokenID returns a random (version 4) UUID.
func newTokenID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
