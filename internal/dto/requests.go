package dto

// RegisterRequest is the text part of the multipart sign-up form
type RegisterRequest struct {
	FullName string `form:"fullName"`
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginRequest accepts either a username or an email
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Identity returns whichever of username or email was sent
func (r LoginRequest) Identity() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// VideoRequest is the text part of the publish and update forms
type VideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type ContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type PlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// PageQuery is the pagination part of a list request
type PageQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// VideoListQuery filters the public video feed
type VideoListQuery struct {
	PageQuery
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}
