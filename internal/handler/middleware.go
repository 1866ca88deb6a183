package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/service"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	currentUserKey = "user"
)

// AuthMiddleware resolves the access token from the cookie or the bearer header
// and stores the authenticated user in the context.
func AuthMiddleware(authenticator service.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			fail(c, domain.Unauthorized("unauthorized request"))
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			fail(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token
	}
	return bearerToken(c)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *domain.PublicUser {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*domain.PublicUser)
	return user
}

func currentUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
