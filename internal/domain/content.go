package domain

import "time"

type Video struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner" db:"owner_id"`
	VideoFile   string    `json:"videoFile" db:"video_file"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Duration    float64   `json:"duration" db:"duration"`
	Views       int64     `json:"views" db:"views"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// VideoWithOwner is a video joined with its owner's summary.
type VideoWithOwner struct {
	Video
	Owner UserSummary `json:"ownerDetails" db:"owner"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	VideoID   string    `json:"video" db:"video_id"`
	OwnerID   string    `json:"owner" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CommentWithOwner is a comment joined with its author's summary.
type CommentWithOwner struct {
	Comment
	Owner UserSummary `json:"ownerDetails" db:"owner"`
}

type Tweet struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Playlist struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"owner" db:"owner_id"`
	Videos      []string  `json:"videos" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
