// Package response writes the uniform JSON envelope returned by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"account_backend/internal/shared/apperr"
)

// MsgInternal is the only message a client sees for an unclassified failure.
const MsgInternal = "internal server error"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// Error writes the envelope for err using the default message of its class.
func Error(c *gin.Context, err error) {
	ErrorMsg(c, err, "")
}

// ErrorMsg writes the envelope for err. A non-empty message replaces the
// class default, except for unclassified errors which always read
// MsgInternal.
func ErrorMsg(c *gin.Context, err error, message string) {
	status, fallback := classify(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err,
		}).Error("request failed")
		message = MsgInternal
	} else if message == "" {
		message = fallback
	}

	body := Envelope{Success: false, Message: message}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body.Errors = ve.ByField()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// Status returns the HTTP status err maps to.
func Status(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "The given data was invalid."
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized."
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthenticated."
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "Forbidden."
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "Not found."
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}
