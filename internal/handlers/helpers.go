// Package handlers exposes the read-only HTTP API over the price history.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/logger"
	"pricewatch/internal/middleware"
)

// requiredQuery reads a non-empty query parameter.
// Returns ErrInvalidInput when the parameter is missing or blank.
func requiredQuery(c *gin.Context, name string) (string, error) {
	v := c.Query(name)
	if v == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing "+name)
	}
	return v, nil
}

// respondWithError is the single error renderer for the API. Known
// AppErrors map to their status and code; anything else is logged in
// full and collapsed to a generic internal error so store internals
// never leak. The response carries the request ID assigned by the
// logging middleware.
func respondWithError(c *gin.Context, err error) {
	requestID := c.GetString(middleware.ContextRequestID)

	var appErr *apperrors.AppError
	switch {
	case !errors.As(err, &appErr):
		logger.Get().Errorw("unhandled api error",
			"request_id", requestID,
			"path", c.Request.URL.Path,
			"error", err.Error(),
		)
		appErr = apperrors.ErrInternalServer
	case appErr.Internal != nil:
		logger.Get().Errorw("api error",
			"request_id", requestID,
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
		)
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":       appErr.Code,
			"message":    appErr.Message,
			"request_id": requestID,
		},
	})
}
