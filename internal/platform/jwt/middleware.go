package jwtmw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/platform/http/response"
	"account_backend/internal/shared/apperr"
	"account_backend/internal/shared/authctx"
)

// ContextPrincipal is the gin context key holding the *authctx.Principal.
const ContextPrincipal = "principal"

// MsgAdminOnly is returned by AdminOnly.
const MsgAdminOnly = "Unauthorized."

// TokenParser verifies a bearer string.
type TokenParser interface {
	Parse(tokenStr string) (Identity, error)
}

// TokenChecker reports whether a token record is still live.
type TokenChecker interface {
	Exists(ctx context.Context, id string, userID uint) (bool, error)
}

// RoleResolver returns the current role of a user.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID uint) (string, error)
}

// AuthRequired returns a Gin middleware that admits a request only if the
// bearer token verifies, its record exists in the token store and its user
// still exists. The principal is stored in both the gin context and the
// request context.
func AuthRequired(parser TokenParser, tokens TokenChecker, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Error(c, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthenticated))
			return
		}

		id, err := parser.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.Error(c, err)
			return
		}

		ok, err := tokens.Exists(c.Request.Context(), id.TokenID, id.UserID)
		if err != nil {
			response.Error(c, fmt.Errorf("check token: %w", err))
			return
		}
		if !ok {
			response.Error(c, ErrInvalidToken)
			return
		}

		role, err := roles.RoleOf(c.Request.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				response.Error(c, ErrInvalidToken)
				return
			}
			response.Error(c, fmt.Errorf("load role: %w", err))
			return
		}

		p := &authctx.Principal{UserID: id.UserID, Role: role, TokenID: id.TokenID}
		c.Set(ContextPrincipal, p)
		c.Request = c.Request.WithContext(authctx.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// AdminOnly rejects requests whose principal is not an admin with 403.
// It must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authctx.FromContext(c.Request.Context()).IsAdmin() {
			response.Abort(c, http.StatusForbidden, MsgAdminOnly)
			return
		}
		c.Next()
	}
}
