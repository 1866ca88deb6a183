package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

// AuthHandler handles sign-up, sign-in and session requests
type AuthHandler struct {
	authService service.AuthService
	cookies     *SessionCookies
	uploads     *Uploads
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookies *SessionCookies, uploads *Uploads) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		uploads:     uploads,
	}
}

// Register handles the multipart sign-up form
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	avatarPath, removeAvatar, err := h.uploads.Save(c, "avatar")
	defer removeAvatar()
	if err != nil {
		fail(c, err)
		return
	}

	coverPath, removeCover, err := h.uploads.Save(c, "coverImage")
	defer removeCover()
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login handles login by username or email
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identity(), req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	h.cookies.Set(c, result.Tokens)
	ok(c, dto.LoginResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// RefreshToken rotates the refresh token taken from the cookie or the request body
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		fail(c, err)
		return
	}

	h.cookies.Set(c, pair)
	ok(c, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// Logout revokes the refresh token and clears both cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}

	h.cookies.Clear(c)
	ok(c, gin.H{}, "User logged out")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), currentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}

	h.cookies.Clear(c)
	ok(c, gin.H{}, "Password changed successfully")
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	ok(c, CurrentUser(c), "Current user fetched successfully")
}
