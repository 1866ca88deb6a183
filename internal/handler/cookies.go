package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/config"
	"github.com/prperemyshlev/videotube/internal/domain"
)

// SessionCookies writes and clears the token cookies
type SessionCookies struct {
	secure        bool
	domain        string
	accessMaxAge  time.Duration
	refreshMaxAge time.Duration
}

func NewSessionCookies(cfg config.CookieConfig, accessMaxAge, refreshMaxAge time.Duration) *SessionCookies {
	return &SessionCookies{
		secure:        cfg.Secure,
		domain:        cfg.Domain,
		accessMaxAge:  accessMaxAge,
		refreshMaxAge: refreshMaxAge,
	}
}

func (s *SessionCookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", s.domain, s.secure, true)
}

func (s *SessionCookies) Set(c *gin.Context, pair *domain.TokenPair) {
	s.set(c, accessTokenCookie, pair.AccessToken, int(s.accessMaxAge.Seconds()))
	s.set(c, refreshTokenCookie, pair.RefreshToken, int(s.refreshMaxAge.Seconds()))
}

func (s *SessionCookies) Clear(c *gin.Context) {
	s.set(c, accessTokenCookie, "", -1)
	s.set(c, refreshTokenCookie, "", -1)
}
