package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
	"go.uber.org/zap"
)

// RateLimitMiddleware rejects requests above limit per window for the key.
// Requests pass through when Redis is unavailable.
func RateLimitMiddleware(rateLimiter *service.RateLimiter, limit int, window time.Duration, keyFunc func(*gin.Context) string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := rateLimiter.Allow(c.Request.Context(), keyFunc(c), limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				http.StatusTooManyRequests,
				fmt.Sprintf("too many requests, try again in %ds", retryAfter),
				nil,
			))
			return
		}

		c.Next()
	}
}

// IPBasedKey keys the limit by client IP and route
func IPBasedKey(c *gin.Context) string {
	return c.FullPath() + ":" + c.ClientIP()
}
