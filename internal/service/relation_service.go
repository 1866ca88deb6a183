package service

import (
	"context"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
)

type likeService struct {
	likeRepo  repository.LikeRepository
	aggregate repository.AggregateRepository
}

// NewLikeService creates a new like service
func NewLikeService(likeRepo repository.LikeRepository, aggregate repository.AggregateRepository) LikeService {
	return &likeService{likeRepo: likeRepo, aggregate: aggregate}
}

func (s *likeService) Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	if target.Column() == "" {
		return false, domain.Validation("unknown like target")
	}
	if err := requireID(targetID, string(target)); err != nil {
		return false, err
	}

	found, err := s.aggregate.LikeTargetExists(ctx, target, targetID)
	if err != nil {
		return false, domain.Internal("failed to look up "+string(target), err)
	}
	if !found {
		return false, domain.NotFound(string(target) + " not found")
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return false, storeError(err, "like")
	}
	return liked, nil
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	aggregate        repository.AggregateRepository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, aggregate repository.AggregateRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, aggregate: aggregate}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if err := requireID(channelID, "channel"); err != nil {
		return false, err
	}
	if subscriberID == channelID {
		return false, domain.Validation("cannot subscribe to your own channel")
	}

	found, err := s.aggregate.UserExists(ctx, channelID)
	if err != nil {
		return false, domain.Internal("failed to look up channel", err)
	}
	if !found {
		return false, domain.NotFound("channel not found")
	}

	subscribed, err := s.subscriptionRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, storeError(err, "subscription")
	}
	return subscribed, nil
}
