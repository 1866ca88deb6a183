package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// TokenMetrics counts token lifecycle events.
type TokenMetrics struct {
	issued        metric.Int64Counter
	rotated       metric.Int64Counter
	reuseDetected metric.Int64Counter
}

// NewTokenMetrics registers the auth counters on meter.
func NewTokenMetrics(meter metric.Meter) (*TokenMetrics, error) {
	issued, err := meter.Int64Counter("auth.tokens.issued",
		metric.WithDescription("Token pairs issued on login or refresh"))
	if err != nil {
		return nil, fmt.Errorf("failed to create issued counter: %w", err)
	}

	rotated, err := meter.Int64Counter("auth.tokens.rotated",
		metric.WithDescription("Successful refresh token rotations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rotated counter: %w", err)
	}

	reuse, err := meter.Int64Counter("auth.refresh.reuse_detected",
		metric.WithDescription("Refresh tokens presented after being rotated or revoked"))
	if err != nil {
		return nil, fmt.Errorf("failed to create reuse counter: %w", err)
	}

	return &TokenMetrics{issued: issued, rotated: rotated, reuseDetected: reuse}, nil
}

func (m *TokenMetrics) tokenIssued(ctx context.Context) {
	if m != nil {
		m.issued.Add(ctx, 1)
	}
}

func (m *TokenMetrics) tokenRotated(ctx context.Context) {
	if m != nil {
		m.rotated.Add(ctx, 1)
	}
}

func (m *TokenMetrics) reuse(ctx context.Context) {
	if m != nil {
		m.reuseDetected.Add(ctx, 1)
	}
}
