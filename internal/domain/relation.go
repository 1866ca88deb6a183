package domain

import "time"

type Subscription struct {
	ID           string    `json:"id" db:"id"`
	SubscriberID string    `json:"subscriber" db:"subscriber_id"`
	ChannelID    string    `json:"channel" db:"channel_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// LikeTarget identifies what a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Column returns the likes column holding a reference to the target.
func (t LikeTarget) Column() string {
	switch t {
	case LikeTargetVideo:
		return "video_id"
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetTweet:
		return "tweet_id"
	}
	return ""
}

// Table returns the table the target lives in.
func (t LikeTarget) Table() string {
	switch t {
	case LikeTargetVideo:
		return "videos"
	case LikeTargetComment:
		return "comments"
	case LikeTargetTweet:
		return "tweets"
	}
	return ""
}
