// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "account_backend/internal/feature/auth/usecase"

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToInput converts the request into a usecase.LoginInput.
func (r LoginReq) ToInput() usecase.LoginInput {
	return usecase.LoginInput{Email: r.Email, Password: r.Password}
}

// LogoutReq represents the optional request body for the /logout endpoint.
// A missing userId means the authenticated user.
type LogoutReq struct {
	UserID *uint `json:"userId"`
}
