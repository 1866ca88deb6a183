package domain

// Page is one slice of a paginated list.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPage computes page metadata for a slice of items.
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// ChannelStats is the dashboard summary of a channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos" db:"total_videos"`
	TotalSubscribers int64 `json:"totalSubscribers" db:"total_subscribers"`
	TotalViews       int64 `json:"totalViews" db:"total_views"`
	TotalLikes       int64 `json:"totalLikes" db:"total_likes"`
}

// VideoQuery filters and orders the public video feed.
type VideoQuery struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortDesc bool
}
