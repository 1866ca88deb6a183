package service

import (
	"context"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
)

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *playlistService) Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}

	playlist := &domain.Playlist{Name: name, Description: strings.TrimSpace(description), OwnerID: ownerID}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (s *playlistService) Get(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	if err := requireID(playlistID, "playlist"); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}
	playlists, err := s.playlistRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlists, nil
}

func (s *playlistService) owned(ctx context.Context, ownerID, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, domain.Forbidden("only the owner can modify this playlist")
	}
	return playlist, nil
}

func (s *playlistService) Update(ctx context.Context, ownerID, playlistID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	if _, err := s.owned(ctx, ownerID, playlistID); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.Update(ctx, playlistID, name, strings.TrimSpace(description))
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, ownerID, playlistID string) error {
	if _, err := s.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return storeError(err, "playlist")
	}
	return nil
}

func (s *playlistService) editable(ctx context.Context, ownerID, playlistID, videoID string) error {
	if err := requireID(videoID, "video"); err != nil {
		return err
	}
	if _, err := s.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return storeError(err, "video")
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.Playlist, error) {
	if err := s.editable(ctx, ownerID, playlistID, videoID); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID string) (*domain.Playlist, error) {
	if err := s.editable(ctx, ownerID, playlistID, videoID); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}
