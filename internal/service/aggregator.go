package service

import (
	"context"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/utils"
)

type aggregator struct {
	repo repository.AggregateRepository
}

// NewAggregator creates the read model service
func NewAggregator(repo repository.AggregateRepository) Aggregator {
	return &aggregator{repo: repo}
}

// paginate runs the count and the page query for one list.
func paginate[T any](
	ctx context.Context,
	p Pagination,
	count func(context.Context) (int64, error),
	list func(ctx context.Context, limit, offset int) ([]T, error),
) (*domain.Page[T], error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	total, err := count(ctx)
	if err != nil {
		return nil, domain.Internal("failed to count items", err)
	}

	var items []T
	if int64(p.Offset()) < total {
		items, err = list(ctx, p.Limit, p.Offset())
		if err != nil {
			return nil, domain.Internal("failed to list items", err)
		}
	}

	page := domain.NewPage(items, total, p.Page, p.Limit)
	return &page, nil
}

func (a *aggregator) mustExist(ctx context.Context, exists func(context.Context, string) (bool, error), id, what string) error {
	if err := requireID(id, what); err != nil {
		return err
	}
	found, err := exists(ctx, id)
	if err != nil {
		return domain.Internal("failed to look up "+what, err)
	}
	if !found {
		return domain.NotFound(what + " not found")
	}
	return nil
}

func (a *aggregator) VideoComments(ctx context.Context, videoID string, p Pagination) (*domain.Page[domain.CommentWithOwner], error) {
	if err := a.mustExist(ctx, a.repo.VideoExists, videoID, "video"); err != nil {
		return nil, err
	}

	return paginate(ctx, p,
		func(ctx context.Context) (int64, error) { return a.repo.CountComments(ctx, videoID) },
		func(ctx context.Context, limit, offset int) ([]domain.CommentWithOwner, error) {
			return a.repo.ListComments(ctx, videoID, limit, offset)
		},
	)
}

func (a *aggregator) Videos(ctx context.Context, q domain.VideoQuery, p Pagination) (*domain.Page[domain.VideoWithOwner], error) {
	if q.OwnerID != "" {
		if err := requireID(q.OwnerID, "user"); err != nil {
			return nil, err
		}
	}

	return paginate(ctx, p,
		func(ctx context.Context) (int64, error) { return a.repo.CountVideos(ctx, q) },
		func(ctx context.Context, limit, offset int) ([]domain.VideoWithOwner, error) {
			return a.repo.ListVideos(ctx, q, limit, offset)
		},
	)
}

func (a *aggregator) WatchHistory(ctx context.Context, userID string, p Pagination) (*domain.Page[domain.VideoWithOwner], error) {
	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}

	return paginate(ctx, p,
		func(ctx context.Context) (int64, error) { return a.repo.CountWatchHistory(ctx, userID) },
		func(ctx context.Context, limit, offset int) ([]domain.VideoWithOwner, error) {
			return a.repo.WatchHistory(ctx, userID, limit, offset)
		},
	)
}

func (a *aggregator) LikedVideos(ctx context.Context, userID string, p Pagination) (*domain.Page[domain.VideoWithOwner], error) {
	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}

	return paginate(ctx, p,
		func(ctx context.Context) (int64, error) { return a.repo.CountLikedVideos(ctx, userID) },
		func(ctx context.Context, limit, offset int) ([]domain.VideoWithOwner, error) {
			return a.repo.LikedVideos(ctx, userID, limit, offset)
		},
	)
}

func (a *aggregator) ChannelStats(ctx context.Context, ownerID string) (*domain.ChannelStats, error) {
	if err := requireID(ownerID, "channel"); err != nil {
		return nil, err
	}

	stats, err := a.repo.ChannelStats(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	return stats, nil
}

func (a *aggregator) ChannelVideos(ctx context.Context, ownerID string) ([]domain.Video, error) {
	if err := a.mustExist(ctx, a.repo.UserExists, ownerID, "channel"); err != nil {
		return nil, err
	}

	videos, err := a.repo.ChannelVideos(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	return videos, nil
}

// ChannelProfile looks the channel up by username, matched the way registration stores it.
func (a *aggregator) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = utils.Normalize(username)
	if username == "" {
		return nil, domain.Validation("username is missing")
	}

	profile, err := a.repo.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	return profile, nil
}

func (a *aggregator) Subscribers(ctx context.Context, channelID string) ([]domain.UserSummary, error) {
	if err := a.mustExist(ctx, a.repo.UserExists, channelID, "channel"); err != nil {
		return nil, err
	}

	users, err := a.repo.Subscribers(ctx, channelID)
	if err != nil {
		return nil, storeError(err, "subscription")
	}
	return users, nil
}

func (a *aggregator) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.UserSummary, error) {
	if err := a.mustExist(ctx, a.repo.UserExists, subscriberID, "subscriber"); err != nil {
		return nil, err
	}

	users, err := a.repo.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, storeError(err, "subscription")
	}
	return users, nil
}
