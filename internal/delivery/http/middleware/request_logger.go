package middleware

import (
	"log/slog"
	"time"

	"hireranker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request. Query strings are
// left out since application links travel in the path only.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.Log.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", c.GetString("RequestID"),
		)
	}
}
