package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/domain"
)

var (
	errWrongTokenType = errors.New("wrong token type")
	errMissingClaim   = errors.New("missing claim")
)

// TokenManager signs and verifies access and refresh tokens.
// Each kind has its own secret so one can never be accepted as the other.
type TokenManager struct {
	accessSecret       []byte
	refreshSecret      []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewTokenManager creates a new token manager
func NewTokenManager(accessSecret, refreshSecret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:       []byte(accessSecret),
		refreshSecret:      []byte(refreshSecret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		now:                time.Now,
	}
}

// WithClock returns a copy of the manager that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *m
	clone.now = now
	return &clone
}

func (m *TokenManager) AccessTokenExpiry() time.Duration {
	return m.accessTokenExpiry
}

func (m *TokenManager) RefreshTokenExpiry() time.Duration {
	return m.refreshTokenExpiry
}

// GenerateAccessToken mints a short-lived token carrying the user's identity.
func (m *TokenManager) GenerateAccessToken(user *domain.User) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"type":     domain.TokenTypeAccess,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(m.accessTokenExpiry).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken mints a long-lived token carrying only the user id.
func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    domain.TokenTypeRefresh,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.refreshTokenExpiry).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken verifies signature, type and expiry of an access token.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return m.validate(tokenString, m.accessSecret, domain.TokenTypeAccess)
}

// ValidateRefreshToken verifies signature, type and expiry of a refresh token.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return m.validate(tokenString, m.refreshSecret, domain.TokenTypeRefresh)
}

func (m *TokenManager) validate(tokenString string, secret []byte, wantType string) (*domain.TokenClaims, error) {
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}

	token, err := jwt.Parse(tokenString, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, errWrongTokenType
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id", errMissingClaim)
	}

	result := &domain.TokenClaims{
		UserID: userID,
		Type:   wantType,
	}
	result.Username, _ = claims["username"].(string)
	result.Email, _ = claims["email"].(string)
	result.ID, _ = claims["jti"].(string)

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		result.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}

	return result, nil
}
