// ABOUTME: Request logging middleware for API endpoints
// ABOUTME: Tags each request with an ID and logs status and timing

package middleware

import (
	"net/http"
	"time"

	"newslens-api/core/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on responses
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// slowRequest is the duration above which a request is logged as a warning
const slowRequest = 5 * time.Second

// RequestLogging logs the start and completion of every request. An
// incoming X-Request-ID is kept; otherwise a new one is generated.
func RequestLogging(logger interfaces.Logger) gin.HandlerFunc {
	logger = interfaces.LoggerOrNop(logger)

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		logger.Debug("Request started", map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"remote_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		fields := map[string]interface{}{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", fields)
		case duration > slowRequest:
			logger.Warn("Slow request detected", fields)
		default:
			logger.Info("Request completed", fields)
		}
	}
}

// Recovery turns a panic in a handler into a JSON 500
func Recovery(logger interfaces.Logger) gin.HandlerFunc {
	logger = interfaces.LoggerOrNop(logger)

	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Handler panicked", map[string]interface{}{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal server error",
		})
	})
}
