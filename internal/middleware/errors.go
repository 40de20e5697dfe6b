package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
)

// StatusFor maps a domain error to its HTTP status.
//
//	models.ErrNotFound                                    → 404
//	models.ErrUnavailable                                 → 503
//	models.ErrNotConfigured                               → 501
//	models.ErrInvalidSymbol, ErrInvalidInput, ErrAlreadyExists → 400
//	anything else                                         → 500
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, models.ErrInvalidSymbol), errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError stops the chain and writes a dto.ErrorResponse.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg(message)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler renders the last error attached with c.Error when the handler
// did not write a response itself.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status := StatusFor(err)
	AbortWithError(c, status, http.StatusText(status), err)
}
