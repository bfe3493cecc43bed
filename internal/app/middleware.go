package app

import (
	"net/http"
	"time"

	"github.com/garyellow/kampus-chat-go/internal/ctxutil"
	"github.com/garyellow/kampus-chat-go/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-Id"

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Next()
	}
}

// corsMiddleware allows any origin, method and header. With an Origin
// header the origin is echoed so credentialed browser requests work.
// Preflight requests end here with 204.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			if headers := c.GetHeader("Access-Control-Request-Headers"); headers != "" {
				c.Header("Access-Control-Allow-Headers", headers)
			} else {
				c.Header("Access-Control-Allow-Headers", "*")
			}
			c.Header("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// loggingMiddleware assigns a request ID and logs HTTP requests with
// status-based log levels: 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-Id")
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithFields(map[string]any{
			"http_method": method,
			"http_path":   path,
			"http_status": status,
			"duration_ms": duration.Milliseconds(),
			"client_ip":   c.ClientIP(),
		}).WithRequestID(requestID)

		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request failed")
		case status == http.StatusNotFound:
			entry.Debug("HTTP request not found")
		case status >= 400:
			entry.Warn("HTTP request rejected")
		default:
			entry.Debug("HTTP request completed")
		}
	}
}
