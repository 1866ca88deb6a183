package service

import (
	"context"
	"math"

	"github.com/prperemyshlev/videotube/internal/domain"
)

// TokenService issues, verifies, rotates and revokes token pairs
type TokenService interface {
	IssuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error)
	VerifyAccessToken(token string) (*domain.TokenClaims, error)
	Rotate(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Revoke(ctx context.Context, userID string) error
}

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.PublicUser, error)
	Login(ctx context.Context, identity, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Authenticator
}

// Authenticator resolves an access token to the identity behind it
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.PublicUser, error)
}

type UserService interface {
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.PublicUser, error)
}

type VideoService interface {
	Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*domain.Video, error)
	Get(ctx context.Context, viewerID, videoID string) (*domain.Video, error)
	Update(ctx context.Context, ownerID, videoID string, in UpdateVideoInput) (*domain.Video, error)
	Delete(ctx context.Context, ownerID, videoID string) error
	TogglePublish(ctx context.Context, ownerID, videoID string) (*domain.Video, error)
}

type CommentService interface {
	Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	Update(ctx context.Context, ownerID, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, ownerID, commentID string) error
}

type LikeService interface {
	Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error)
}

type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error)
	Get(ctx context.Context, playlistID string) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error)
	Update(ctx context.Context, ownerID, playlistID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, ownerID, playlistID string) error
	AddVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.Playlist, error)
}

type TweetService interface {
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Tweet, error)
	Update(ctx context.Context, ownerID, tweetID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, ownerID, tweetID string) error
}

// Aggregator serves read-only joined views
type Aggregator interface {
	VideoComments(ctx context.Context, videoID string, p Pagination) (*domain.Page[domain.CommentWithOwner], error)
	Videos(ctx context.Context, q domain.VideoQuery, p Pagination) (*domain.Page[domain.VideoWithOwner], error)
	WatchHistory(ctx context.Context, userID string, p Pagination) (*domain.Page[domain.VideoWithOwner], error)
	LikedVideos(ctx context.Context, userID string, p Pagination) (*domain.Page[domain.VideoWithOwner], error)
	ChannelStats(ctx context.Context, ownerID string) (*domain.ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID string) ([]domain.Video, error)
	ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	Subscribers(ctx context.Context, channelID string) ([]domain.UserSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.UserSummary, error)
}

// RegisterInput carries a sign-up form. Image paths point at already saved temp files.
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type LoginResult struct {
	User   *domain.PublicUser
	Tokens *domain.TokenPair
}

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput leaves the thumbnail untouched when ThumbnailPath is empty
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

const MaxPageLimit = 100

// Pagination selects one page of a list. Page numbers start at 1.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return domain.Validation("page and limit must be positive integers")
	}
	if p.Limit > MaxPageLimit {
		return domain.Validation("limit is too large")
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return domain.Validation("page is too large")
	}
	return nil
}

// Offset is the number of items before the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
