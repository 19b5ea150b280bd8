// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"account_backend/internal/feature/users/domain"
	"account_backend/internal/feature/users/domain/entity"
	"account_backend/internal/feature/users/transport/http/dto"
	"account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/http/response"
	"account_backend/internal/platform/metrics"
	"account_backend/internal/shared/apperr"
	"account_backend/internal/shared/authctx"
)

const (
	MsgRegistered = "User registered successfully."
	MsgListed     = "Users retrieved successfully."
	MsgRetrieved  = "User retrieved successfully."
	MsgUpdated    = "User updated successfully."
	MsgDeleted    = "User deleted successfully."
	MsgNotFound   = "User not found."
)

// UserUsecase defines the user management operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context, perPage, page int) (entity.Page, error)
	Create(ctx context.Context, in usecase.CreateInput) (entity.UserView, error)
	GetByID(ctx context.Context, id uint) (entity.UserView, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (entity.UserView, error)
	UpdateProfile(ctx context.Context, requester *authctx.Principal, targetID uint, in usecase.UpdateInput) (entity.UserView, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /register.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		response.Error(c, apperr.InvalidBody())
		return
	}

	view, err := h.users.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		result := "error"
		if errors.Is(err, apperr.ErrValidation) {
			result = "invalid"
			logrus.WithFields(logrus.Fields{
				"email":       req.Email,
				"remote_addr": c.ClientIP(),
			}).Warn("registration rejected")
		}
		metrics.RegistrationsTotal.WithLabelValues(result).Inc()
		response.Error(c, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{"user_id": view.ID, "remote_addr": c.ClientIP()}).Info("user registered")
	response.Created(c, MsgRegistered, view)
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperr.NewValidationError([]apperr.FieldError{
			{Field: "perPage", Rule: "integer", Message: "perPage and page must be integers"},
		}))
		return
	}

	page, err := h.users.List(c.Request.Context(), q.PerPage, q.Page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MsgListed, page)
}

// Show handles GET /users/:id.
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	view, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorMsg(c, err, notFoundMsg(err))
		return
	}
	response.OK(c, MsgRetrieved, view)
}

// Update handles PUT /users/:id (admin).
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidBody())
		return
	}

	view, err := h.users.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.ErrorMsg(c, err, notFoundMsg(err))
		return
	}
	response.OK(c, MsgUpdated, view)
}

// UpdateProfile handles PUT /users/:id/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidBody())
		return
	}

	requester := authctx.FromContext(c.Request.Context())
	view, err := h.users.UpdateProfile(c.Request.Context(), requester, id, req.ToInput())
	if err != nil {
		response.ErrorMsg(c, err, notFoundMsg(err))
		return
	}
	response.OK(c, MsgUpdated, view)
}

// Destroy handles DELETE /users/:id (admin).
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.ErrorMsg(c, err, notFoundMsg(err))
		return
	}

	metrics.TokensRevokedTotal.WithLabelValues("user_deleted").Inc()
	logrus.WithFields(logrus.Fields{"user_id": id}).Info("user deleted")
	response.OK(c, MsgDeleted, nil)
}

// userID parses the :id path parameter. Ids that cannot name a user are
// reported as not found.
func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		response.ErrorMsg(c, domain.ErrUserNotFound, MsgNotFound)
		return 0, false
	}
	return uint(id), true
}

func notFoundMsg(err error) string {
	if errors.Is(err, apperr.ErrNotFound) {
		return MsgNotFound
	}
	return ""
}
