package dto

import "github.com/prperemyshlev/videotube/internal/domain"

// ApiResponse wraps every successful response
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse wraps every failed response
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func NewApiResponse(statusCode int, data any, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func NewErrorResponse(statusCode int, message string, errors []string) ErrorResponse {
	if errors == nil {
		errors = []string{}
	}
	return ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errors,
	}
}

type LoginResponse struct {
	User         *domain.PublicUser `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
}

type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
}
