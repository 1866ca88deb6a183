package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler exposes the scrape handler on a gin route
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"statusCode": http.StatusServiceUnavailable,
				"message":    "metrics handler not initialized",
				"success":    false,
				"errors":     []string{},
			})
			return
		}
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
