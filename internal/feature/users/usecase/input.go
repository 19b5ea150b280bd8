package usecase

import (
	"account_backend/internal/shared/validation"
)

const (
	// DefaultPerPage is used when perPage is missing or non-positive.
	DefaultPerPage = 10
	// MaxPerPage caps the page size.
	MaxPerPage = 100
	// MaxPage caps the page number so the row offset cannot overflow.
	MaxPage = 1_000_000
)

// CreateInput is the validated payload for creating a user.
type CreateInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Validate checks every field and reports all violations at once.
func (in CreateInput) Validate() error {
	var c validation.Collector
	c.Text("username", in.Username)
	c.Text("firstName", in.FirstName)
	c.Text("lastName", in.LastName)
	c.EmailAddress("email", in.Email)
	c.NewPassword("password", in.Password)
	return c.Err()
}

// UpdateInput is a partial update. Nil fields are not supplied.
type UpdateInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// Validate applies the create rules to supplied fields only.
func (in UpdateInput) Validate() error {
	var c validation.Collector
	if in.Username != nil {
		c.Text("username", *in.Username)
	}
	if in.FirstName != nil {
		c.Text("firstName", *in.FirstName)
	}
	if in.LastName != nil {
		c.Text("lastName", *in.LastName)
	}
	if in.Email != nil {
		c.EmailAddress("email", *in.Email)
	}
	if in.Password != nil {
		c.NewPassword("password", *in.Password)
	}
	return c.Err()
}

// normalizePaging applies the listing defaults.
func normalizePaging(perPage, page int) (int, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page <= 0 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return perPage, page
}
