// Package dto defines data transfer objects for the users feature's HTTP transport layer.
// Field rules live in the usecase inputs; binding only decodes JSON.
package dto

import "account_backend/internal/feature/users/usecase"

// CreateUserReq is the body of POST /register.
type CreateUserReq struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ToInput converts the request into a usecase.CreateInput.
func (r CreateUserReq) ToInput() usecase.CreateInput {
	return usecase.CreateInput{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// UpdateUserReq is the body of every partial update endpoint.
// Absent, null and empty-string fields are all treated as not supplied.
type UpdateUserReq struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// ToInput converts the request into a usecase.UpdateInput.
func (r UpdateUserReq) ToInput() usecase.UpdateInput {
	return usecase.UpdateInput{
		Username:  supplied(r.Username),
		FirstName: supplied(r.FirstName),
		LastName:  supplied(r.LastName),
		Email:     supplied(r.Email),
		Password:  supplied(r.Password),
	}
}

func supplied(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

// ListQuery holds the query parameters of GET /users.
type ListQuery struct {
	PerPage int `form:"perPage"`
	Page    int `form:"page"`
}
