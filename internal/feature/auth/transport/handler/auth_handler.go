// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"account_backend/internal/feature/auth/transport/http/dto"
	"account_backend/internal/feature/auth/usecase"
	usersentity "account_backend/internal/feature/users/domain/entity"
	usersdto "account_backend/internal/feature/users/transport/http/dto"
	usersusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/http/response"
	"account_backend/internal/platform/metrics"
	"account_backend/internal/shared/apperr"
	"account_backend/internal/shared/authctx"
)

const (
	MsgLoggedIn  = "Login successfully."
	MsgLoggedOut = "Successfully logged out"
	MsgDetails   = "User retrieved successfully."
	MsgUpdated   = "User updated successfully."
	MsgBadLogin  = "Invalid email or password."
)

// AuthUsecase defines the session and self-service operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Login(ctx context.Context, in usecase.LoginInput) (usecase.TokenResult, error)
	Logout(ctx context.Context, p *authctx.Principal, userID uint) error
	ShowDetails(ctx context.Context, p *authctx.Principal) (usersentity.UserView, error)
	UpdateSelf(ctx context.Context, p *authctx.Principal, in usersusecase.UpdateInput) (usersentity.UserView, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidBody())
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		// Do not expose the failure reason to prevent user enumeration
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		logrus.WithFields(logrus.Fields{
			"email":       req.Email,
			"remote_addr": c.ClientIP(),
			"error":       err,
		}).Warn("login failed")
		if errors.Is(err, apperr.ErrUnauthorized) {
			response.ErrorMsg(c, err, MsgBadLogin)
			return
		}
		response.Error(c, err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{"email": req.Email, "remote_addr": c.ClientIP()}).Info("user login successful")
	response.OK(c, MsgLoggedIn, res)
}

// Logout handles POST /logout. The body is optional.
func (h *AuthHandler) Logout(c *gin.Context) {
	p := authctx.FromContext(c.Request.Context())

	var req dto.LogoutReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperr.InvalidBody())
		return
	}
	var userID uint
	switch {
	case req.UserID != nil:
		userID = *req.UserID
	case p != nil:
		userID = p.UserID
	}

	if err := h.auth.Logout(c.Request.Context(), p, userID); err != nil {
		response.Error(c, err)
		return
	}

	metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	logrus.WithFields(logrus.Fields{"user_id": userID}).Info("user logged out")
	response.OK(c, MsgLoggedOut, nil)
}

// Profile handles GET /profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	view, err := h.auth.ShowDetails(c.Request.Context(), authctx.FromContext(c.Request.Context()))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MsgDetails, view)
}

// UpdateSelf handles PUT /user/update and PUT /profile/update.
func (h *AuthHandler) UpdateSelf(c *gin.Context) {
	var req usersdto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidBody())
		return
	}

	view, err := h.auth.UpdateSelf(c.Request.Context(), authctx.FromContext(c.Request.Context()), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MsgUpdated, view)
}
