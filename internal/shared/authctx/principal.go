// Package authctx carries the authenticated caller through a request.
package authctx

import "context"

// Role values stored on users.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated user bound to the current request.
type Principal struct {
	UserID  uint
	Role    string
	TokenID string
}

// IsAdmin reports whether the principal passes the admin gate.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type ctxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal, or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}
