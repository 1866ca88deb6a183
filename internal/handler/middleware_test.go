package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/config"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*domain.PublicUser, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*domain.PublicUser)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, identity, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, identity, password)
	result, _ := args.Get(0).(*service.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *mockAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.PublicUser, error) {
	args := m.Called(ctx, accessToken)
	user, _ := args.Get(0).(*domain.PublicUser)
	return user, args.Error(1)
}

var alice = &domain.PublicUser{ID: "5b7f3a3e-7a43-4d63-9a53-0d7c2d0c1e11", Username: "alice"}

func newAuthRouter(auth *mockAuthService) *gin.Engine {
	cookies := NewSessionCookies(config.CookieConfig{Secure: true}, 15*time.Minute, 240*time.Hour)
	h := NewAuthHandler(auth, cookies, nil)

	router := gin.New()
	router.Use(LoggerMiddleware(zap.NewNop()))
	router.POST("/login", h.Login)
	router.POST("/refresh-token", h.RefreshToken)
	router.POST("/logout", AuthMiddleware(auth), h.Logout)
	router.GET("/current-user", AuthMiddleware(auth), h.CurrentUser)
	return router
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	auth := new(mockAuthService)
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/current-user", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.False(t, body.Success)
	assert.NotNil(t, body.Errors)
	auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthMiddlewareCookieAndBearer(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Authenticate", mock.Anything, "cookie-token").Return(alice, nil)
	auth.On("Authenticate", mock.Anything, "header-token").Return(alice, nil)
	router := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		dto.ApiResponse
		Data domain.PublicUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "alice", body.Data.Username)
	auth.AssertExpectations(t)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Authenticate", mock.Anything, "expired").Return(nil, domain.InvalidToken(assert.AnError))

	req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeError(t, rec).Message)
}

func TestLoginSetsSecureCookies(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Login", mock.Anything, "alice", "wonderland").Return(&service.LoginResult{
		User:   alice,
		Tokens: &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"wonderland"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	require.Contains(t, cookies, "accessToken")
	require.Contains(t, cookies, "refreshToken")
	assert.Equal(t, "refresh", cookies["refreshToken"].Value)
	assert.True(t, cookies["accessToken"].HttpOnly)
	assert.True(t, cookies["accessToken"].Secure)
	assert.True(t, cookies["refreshToken"].HttpOnly)
	assert.True(t, cookies["refreshToken"].Secure)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Login", mock.Anything, "alice@example.com", "nope").Return(nil, domain.Unauthorized("invalid credentials"))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeError(t, rec).Message)
}

func TestRefreshTokenFromBody(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Refresh", mock.Anything, "body-token").Return(&domain.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "body-token"})
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	auth.AssertExpectations(t)
}

func TestRefreshTokenReused(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Refresh", mock.Anything, "stale").Return(nil, domain.Unauthorized("refresh token reused or revoked"))

	req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale"})
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("Authenticate", mock.Anything, "token").Return(alice, nil)
	auth.On("Logout", mock.Anything, alice.ID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	newAuthRouter(auth).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, cookie := range rec.Result().Cookies() {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
	assert.Len(t, rec.Result().Cookies(), 2)
}

func TestFailHidesInternalErrors(t *testing.T) {
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		fail(c, domain.Internal("failed to query", assert.AnError))
	})
	router.GET("/invalid", func(c *gin.Context) {
		fail(c, domain.Validation("invalid registration data", "email is not a valid address"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "something went wrong", decodeError(t, rec).Message)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"email is not a valid address"}, decodeError(t, rec).Errors)
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:3000"}, []string{"GET", "POST"}, []string{"Content-Type"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
