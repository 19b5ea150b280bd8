package usecase

import "account_backend/internal/shared/validation"

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that both credentials are present and the email is well formed.
func (in LoginInput) Validate() error {
	var c validation.Collector
	if c.Required("email", in.Email) {
		c.Email("email", in.Email)
	}
	c.Required("password", in.Password)
	return c.Err()
}

// TokenResult is returned by a successful login.
type TokenResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}
