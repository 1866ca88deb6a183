package service

import (
	"context"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
)

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *commentService) Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	if err := requireID(videoID, "video"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, storeError(err, "video")
	}

	comment := &domain.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err, "comment")
	}
	return comment, nil
}

func (s *commentService) owned(ctx context.Context, ownerID, commentID string) error {
	if err := requireID(commentID, "comment"); err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return storeError(err, "comment")
	}
	if comment.OwnerID != ownerID {
		return domain.Forbidden("only the author can modify this comment")
	}
	return nil
}

func (s *commentService) Update(ctx context.Context, ownerID, commentID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("content is required")
	}
	if err := s.owned(ctx, ownerID, commentID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Update(ctx, commentID, content)
	if err != nil {
		return nil, storeError(err, "comment")
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, ownerID, commentID string) error {
	if err := s.owned(ctx, ownerID, commentID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return storeError(err, "comment")
	}
	return nil
}
