package handlers

import (
	"errors"
	"net/http"

	"coldstore/internal/domain"
	"coldstore/internal/http/middleware"
	"coldstore/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{"message": message}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.AbortWithStatusJSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Anything that is
// not a known domain error is reported as a 500.
func RespondDomainError(c *gin.Context, err error) {
	var nf domain.NotFoundError
	switch {
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, "Forbidden", nil)
	case errors.As(err, &nf):
		RespondError(c, http.StatusNotFound, nf.Error(), nil)
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal Server Error", err)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
