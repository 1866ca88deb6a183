package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/utils"
	"go.uber.org/zap"
)

// RefreshTokenStore is the part of the credential store the token service writes to.
type RefreshTokenStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, id string, token *string) error
	CompareAndSwapRefreshToken(ctx context.Context, id, current, next string) (bool, error)
}

type tokenService struct {
	store   RefreshTokenStore
	tokens  *utils.TokenManager
	metrics *TokenMetrics
	logger  *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(store RefreshTokenStore, tokens *utils.TokenManager, metrics *TokenMetrics, logger *zap.Logger) TokenService {
	return &tokenService{
		store:   store,
		tokens:  tokens,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *tokenService) mint(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domain.Internal("failed to generate access token", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, domain.Internal("failed to generate refresh token", err)
	}

	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// IssuePair mints a new pair and stores its refresh token, replacing any previous one.
func (s *tokenService) IssuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, err := s.mint(user)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized("invalid credentials")
		}
		return nil, domain.Internal("failed to save refresh token", err)
	}

	s.metrics.tokenIssued(ctx)
	return pair, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.InvalidToken(err)
	}
	return claims, nil
}

// Rotate exchanges a refresh token for a new pair. Each refresh token is accepted once.
func (s *tokenService) Rotate(ctx context.Context, presented string) (*domain.TokenPair, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return nil, domain.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.ValidateRefreshToken(presented)
	if err != nil {
		return nil, domain.InvalidToken(err)
	}

	user, err := s.store.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized("invalid refresh token")
		}
		return nil, domain.Internal("failed to load user", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, s.reused(ctx, user.ID)
	}

	pair, err := s.mint(user)
	if err != nil {
		return nil, err
	}

	swapped, err := s.store.CompareAndSwapRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, domain.Internal("failed to rotate refresh token", err)
	}
	if !swapped {
		return nil, s.reused(ctx, user.ID)
	}

	s.metrics.tokenRotated(ctx)
	s.metrics.tokenIssued(ctx)
	return pair, nil
}

func (s *tokenService) reused(ctx context.Context, userID string) error {
	s.metrics.reuse(ctx)
	s.logger.Warn("refresh token reused or revoked", zap.String("user_id", userID))
	return domain.Unauthorized("refresh token reused or revoked")
}

// Revoke clears the stored refresh token. Revoking twice is not an error.
func (s *tokenService) Revoke(ctx context.Context, userID string) error {
	if err := s.store.SetRefreshToken(ctx, userID, nil); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Internal("failed to revoke refresh token", err)
	}
	return nil
}
