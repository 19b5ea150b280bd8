package usecase

import (
	"context"
	"errors"
	"fmt"

	"account_backend/internal/feature/users/domain"
	"account_backend/internal/feature/users/domain/entity"
	"account_backend/internal/shared/authctx"
)

// UserRepository abstracts the persistence layer for users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// A unique constraint violation is returned as *domain.DuplicateError.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns users in id order with the total row count.
	List(ctx context.Context, offset, limit int) ([]entity.User, int64, error)

	// Update applies the supplied fields and returns the stored row.
	Update(ctx context.Context, id uint, changes entity.Changes) (*entity.User, error)

	// Delete returns domain.ErrUserNotFound when no row matches.
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenRevoker removes every bearer token of a user.
type TokenRevoker interface {
	DeleteAllByUserID(ctx context.Context, userID uint) error
}

// UserUsecase implements administrative and self-service user management.
type UserUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenRevoker
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(users UserRepository, hasher PasswordHasher, tokens TokenRevoker) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher, tokens: tokens}
}

// List returns one page of users.
func (u *UserUsecase) List(ctx context.Context, perPage, page int) (entity.Page, error) {
	perPage, page = normalizePaging(perPage, page)
	users, total, err := u.users.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return entity.Page{}, fmt.Errorf("list users: %w", err)
	}
	return entity.NewPage(users, page, perPage, total), nil
}

// Create validates the input, hashes the password and stores the user.
// Uniqueness is decided by the store; a violation is reported as a
// validation error on the colliding fields.
func (u *UserUsecase) Create(ctx context.Context, in CreateInput) (entity.UserView, error) {
	return u.create(ctx, in, authctx.RoleUser)
}

// SeedAdmin creates an admin account unless a user with the same email
// already exists. created is false when the existing user was kept.
func (u *UserUsecase) SeedAdmin(ctx context.Context, in CreateInput) (view entity.UserView, created bool, err error) {
	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return existing.View(), false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return entity.UserView{}, false, fmt.Errorf("find user: %w", err)
	}
	view, err = u.create(ctx, in, authctx.RoleAdmin)
	if err != nil {
		return entity.UserView{}, false, err
	}
	return view, true, nil
}

func (u *UserUsecase) create(ctx context.Context, in CreateInput, role string) (entity.UserView, error) {
	if err := in.Validate(); err != nil {
		return entity.UserView{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return entity.UserView{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return entity.UserView{}, translate(err)
	}
	return user.View(), nil
}

// GetByID returns the user view for id.
func (u *UserUsecase) GetByID(ctx context.Context, id uint) (entity.UserView, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return entity.UserView{}, err
	}
	return user.View(), nil
}

// Update applies a partial update to any user. A supplied password is
// re-hashed; unsupplied fields keep their stored values.
func (u *UserUsecase) Update(ctx context.Context, id uint, in UpdateInput) (entity.UserView, error) {
	if err := in.Validate(); err != nil {
		return entity.UserView{}, err
	}

	changes := entity.Changes{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if in.Password != nil {
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return entity.UserView{}, fmt.Errorf("failed to hash password: %w", err)
		}
		changes.PasswordHash = &hashed
	}

	user, err := u.users.Update(ctx, id, changes)
	if err != nil {
		return entity.UserView{}, translate(err)
	}
	return user.View(), nil
}

// UpdateProfile lets a user update their own record through the users API.
func (u *UserUsecase) UpdateProfile(ctx context.Context, requester *authctx.Principal, targetID uint, in UpdateInput) (entity.UserView, error) {
	if requester == nil {
		return entity.UserView{}, ErrLoginRequired
	}
	if requester.UserID != targetID {
		return entity.UserView{}, ErrNotProfileOwner
	}
	return u.Update(ctx, targetID, in)
}

// Delete revokes the user's tokens and then removes the user row, so no
// session outlives its owner.
func (u *UserUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.tokens.DeleteAllByUserID(ctx, id); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return u.users.Delete(ctx, id)
}

func translate(err error) error {
	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		return dup.AsValidation()
	}
	return err
}
