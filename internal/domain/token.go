package domain

import "time"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims holds the verified claims of a token.
type TokenClaims struct {
	UserID    string
	Username  string
	Email     string
	Type      string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of a login or a refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
