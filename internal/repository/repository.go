package repository

import (
	"github.com/prperemyshlev/videotube/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Tweet        TweetRepository
	Playlist     PlaylistRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
	Aggregate    AggregateRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Video:        NewVideoRepository(db),
		Comment:      NewCommentRepository(db),
		Tweet:        NewTweetRepository(db),
		Playlist:     NewPlaylistRepository(db),
		Like:         NewLikeRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Aggregate:    NewAggregateRepository(db),
	}
}
