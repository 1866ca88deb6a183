package repository

import (
	"context"

	"github.com/prperemyshlev/videotube/internal/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByIdentity looks a user up by username or email.
	GetByIdentity(ctx context.Context, identity string) (*domain.User, error)
	FindTaken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, url string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*domain.User, error)
	// SetRefreshToken replaces the stored refresh token. A nil token clears it.
	SetRefreshToken(ctx context.Context, id string, token *string) error
	// CompareAndSwapRefreshToken stores next only if the stored token still equals current.
	CompareAndSwapRefreshToken(ctx context.Context, id, current, next string) (bool, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id string) error
	TogglePublished(ctx context.Context, id string) (*domain.Video, error)
	// RecordView counts a view and appends to the viewer's history the first time a user watches a video.
	RecordView(ctx context.Context, userID, videoID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, id, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id string) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Tweet, error)
	Update(ctx context.Context, id, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id string) error
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error)
	Update(ctx context.Context, id, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error)
}

type LikeRepository interface {
	// Toggle adds the like if absent and removes it otherwise. It reports whether the target is now liked.
	Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error)
}

type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
}

// AggregateRepository serves joined, read-only views.
type AggregateRepository interface {
	UserExists(ctx context.Context, id string) (bool, error)
	VideoExists(ctx context.Context, id string) (bool, error)
	LikeTargetExists(ctx context.Context, target domain.LikeTarget, id string) (bool, error)

	CountComments(ctx context.Context, videoID string) (int64, error)
	ListComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentWithOwner, error)

	CountVideos(ctx context.Context, q domain.VideoQuery) (int64, error)
	ListVideos(ctx context.Context, q domain.VideoQuery, limit, offset int) ([]domain.VideoWithOwner, error)
	ChannelVideos(ctx context.Context, ownerID string) ([]domain.Video, error)

	CountWatchHistory(ctx context.Context, userID string) (int64, error)
	WatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error)

	CountLikedVideos(ctx context.Context, userID string) (int64, error)
	LikedVideos(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error)

	ChannelStats(ctx context.Context, ownerID string) (*domain.ChannelStats, error)
	ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	Subscribers(ctx context.Context, channelID string) ([]domain.UserSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.UserSummary, error)
}
