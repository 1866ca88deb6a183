package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerMiddleware logs one line per request. Server errors attached by
// handlers are logged with their cause.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
		}
		if userID := currentUserID(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		level := zapcore.InfoLevel
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.Error(last.Err))
			if domain.StatusCode(last.Err) >= 500 {
				level = zapcore.ErrorLevel
			}
		}

		logger.Log(level, "HTTP request", fields...)
	}
}
