package service

import (
	"context"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/storage"
	"go.uber.org/zap"
)

type videoService struct {
	videoRepo repository.VideoRepository
	blobs     storage.BlobStore
	logger    *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo repository.VideoRepository, blobs storage.BlobStore, logger *zap.Logger) VideoService {
	return &videoService{videoRepo: videoRepo, blobs: blobs, logger: logger}
}

func (s *videoService) Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, domain.Validation("title and description are required")
	}
	if in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, domain.Validation("video file and thumbnail are required")
	}

	videoFile := s.blobs.Upload(ctx, in.VideoPath)
	if videoFile == nil {
		return nil, domain.Validation("error while uploading video file")
	}
	thumbnail := s.blobs.Upload(ctx, in.ThumbnailPath)
	if thumbnail == nil {
		return nil, domain.Validation("error while uploading thumbnail")
	}

	video := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   videoFile.URL,
		Thumbnail:   thumbnail.URL,
		Title:       title,
		Description: description,
		IsPublished: true,
	}
	if videoFile.Duration != nil {
		video.Duration = *videoFile.Duration
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, storeError(err, "video")
	}

	s.logger.Info("video published", zap.String("video_id", video.ID), zap.String("owner_id", ownerID))
	return video, nil
}

// Get returns a video and records the view for the viewer.
// Unpublished videos are visible to their owner only.
func (s *videoService) Get(ctx context.Context, viewerID, videoID string) (*domain.Video, error) {
	if err := requireID(videoID, "video"); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, domain.NotFound("video not found")
	}

	if err := s.videoRepo.RecordView(ctx, viewerID, videoID); err != nil {
		return nil, storeError(err, "video")
	}

	video, err = s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	return video, nil
}

func (s *videoService) owned(ctx context.Context, ownerID, videoID string) (*domain.Video, error) {
	if err := requireID(videoID, "video"); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	if video.OwnerID != ownerID {
		return nil, domain.Forbidden("only the owner can modify this video")
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, ownerID, videoID string, in UpdateVideoInput) (*domain.Video, error) {
	video, err := s.owned(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" && description == "" && in.ThumbnailPath == "" {
		return nil, domain.Validation("nothing to update")
	}
	if title != "" {
		video.Title = title
	}
	if description != "" {
		video.Description = description
	}
	if in.ThumbnailPath != "" {
		thumbnail := s.blobs.Upload(ctx, in.ThumbnailPath)
		if thumbnail == nil {
			return nil, domain.Validation("error while uploading thumbnail")
		}
		video.Thumbnail = thumbnail.URL
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, storeError(err, "video")
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, ownerID, videoID string) error {
	if _, err := s.owned(ctx, ownerID, videoID); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return storeError(err, "video")
	}
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, ownerID, videoID string) (*domain.Video, error) {
	if _, err := s.owned(ctx, ownerID, videoID); err != nil {
		return nil, err
	}
	video, err := s.videoRepo.TogglePublished(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	return video, nil
}
