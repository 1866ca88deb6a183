package service

import (
	"context"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
)

type tweetService struct {
	tweetRepo repository.TweetRepository
}

// NewTweetService creates a new tweet service
func NewTweetService(tweetRepo repository.TweetRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo}
}

func (s *tweetService) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}

	tweet := &domain.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, storeError(err, "tweet")
	}
	return tweet, nil
}

func (s *tweetService) ListByUser(ctx context.Context, userID string) ([]*domain.Tweet, error) {
	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}
	tweets, err := s.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, "tweet")
	}
	return tweets, nil
}

func (s *tweetService) owned(ctx context.Context, ownerID, tweetID string) error {
	if err := requireID(tweetID, "tweet"); err != nil {
		return err
	}
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return storeError(err, "tweet")
	}
	if tweet.OwnerID != ownerID {
		return domain.Forbidden("only the author can modify this tweet")
	}
	return nil
}

func (s *tweetService) Update(ctx context.Context, ownerID, tweetID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}
	if err := s.owned(ctx, ownerID, tweetID); err != nil {
		return nil, err
	}
	tweet, err := s.tweetRepo.Update(ctx, tweetID, content)
	if err != nil {
		return nil, storeError(err, "tweet")
	}
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, ownerID, tweetID string) error {
	if err := s.owned(ctx, ownerID, tweetID); err != nil {
		return err
	}
	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return storeError(err, "tweet")
	}
	return nil
}
