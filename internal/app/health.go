package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	deps   map[string]Pinger
	logger *zap.Logger
}

func NewHealthChecker(deps map[string]Pinger, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		deps:   deps,
		logger: logger,
	}
}

func (h *HealthChecker) check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	errs := make(chan error, len(h.deps))
	for name, dep := range h.deps {
		go func() {
			if err := dep.Ping(ctx); err != nil {
				errs <- fmt.Errorf("%s: %w", name, err)
				return
			}
			errs <- nil
		}()
	}

	var joined error
	for range h.deps {
		joined = errors.Join(joined, <-errs)
	}
	return joined
}

func (h *HealthChecker) Handler(c *gin.Context) {
	if err := h.check(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "fail", []string{err.Error()}))
		return
	}

	c.JSON(http.StatusOK, dto.NewApiResponse(http.StatusOK, gin.H{"status": "pass"}, "pass"))
}
