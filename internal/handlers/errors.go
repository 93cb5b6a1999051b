package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError maps err to a status code and writes it. Server-side
// failures are logged with their cause and reported generically.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromContext(c)
	status := apperrors.StatusCode(err)

	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	resp := ErrorResponse{Error: err.Error()}
	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		resp.Error = "Validation failed"
		resp.Details = vErr.Fields
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		resp.Error = appErr.Message
	}
	c.AbortWithStatusJSON(status, resp)
}

// bindJSON decodes the request body, reporting malformed input as a validation error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondWithError(c, apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "body",
			Message: "invalid request format: " + err.Error(),
		}}))
		return false
	}
	return true
}

// currentUserID returns the authenticated caller or replies 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthenticated)
		return "", false
	}
	return userID, true
}
