// Package middleware provides Gin middleware for the read API.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pricewatch/internal/logger"
)

// ContextRequestID is the Gin context key under which the request ID is
// stored; handlers attach it to error responses so a client-reported
// failure can be matched to its server log line.
const ContextRequestID = "requestID"

// RequestLogging tags every request with an ID and logs one line per
// query. The API is a read-only localhost surface, so the line carries
// just enough to trace a lookup: route, query string, status, latency.
// Health probes are not logged; they would drown out the poll loop.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		if c.FullPath() == "/api/health" {
			return
		}

		logger.Get().Infow("api request",
			"request_id", requestID,
			"route", c.FullPath(),
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
