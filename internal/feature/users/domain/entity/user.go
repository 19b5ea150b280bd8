// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"account_backend/internal/shared/authctx"
)

// User represents a registered account.
type User struct {
	// ID is assigned by the store on creation and never changes.
	ID uint `gorm:"primaryKey"`

	// Username is unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	FirstName string `gorm:"size:255;not null"`
	LastName  string `gorm:"size:255;not null"`

	// Email is used for login and is unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password. It is never serialized.
	PasswordHash string `gorm:"column:password;size:255;not null" json:"-"`

	// Role is either "admin" or "user".
	Role string `gorm:"size:16;not null;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user passes the admin gate.
func (u *User) IsAdmin() bool {
	return u.Role == authctx.RoleAdmin
}

// View returns the externally visible projection of the user.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Role:      u.Role,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// UserView is the subset of User fields safe to expose.
type UserView struct {
	ID        uint   `json:"id"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Changes is a partial update. Nil fields are left untouched.
// PasswordHash carries an already hashed value.
type Changes struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether no field is supplied.
func (c Changes) IsEmpty() bool {
	return c.Username == nil && c.FirstName == nil && c.LastName == nil &&
		c.Email == nil && c.PasswordHash == nil
}
