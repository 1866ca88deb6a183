package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/pkg/database"
)

const playlistColumns = `id, name, description, owner_id, created_at, updated_at`

type playlistRepository struct {
	db *database.Postgres
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *database.Postgres) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	playlist.Videos = []string{}

	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO playlists (id, name, description, owner_id, created_at, updated_at)
		VALUES (:id, :name, :description, :owner_id, :created_at, :updated_at)
	`, playlist)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.db.DB.GetContext(ctx, &playlist, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	if err := r.loadVideos(ctx, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) loadVideos(ctx context.Context, playlist *domain.Playlist) error {
	playlist.Videos = []string{}
	err := r.db.DB.SelectContext(ctx, &playlist.Videos,
		`SELECT video_id FROM playlist_videos WHERE playlist_id = $1 ORDER BY added_at`,
		playlist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load playlist videos: %w", err)
	}
	return nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	playlists := []*domain.Playlist{}
	err := r.db.DB.SelectContext(ctx, &playlists,
		`SELECT `+playlistColumns+` FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	for _, p := range playlists {
		if err := r.loadVideos(ctx, p); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, id, name, description string) (*domain.Playlist, error) {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE playlists SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`,
		id, name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return expectOneRow(result)
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	err := r.editMembership(ctx, playlistID,
		`INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return r.GetByID(ctx, playlistID)
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	err := r.editMembership(ctx, playlistID,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return r.GetByID(ctx, playlistID)
}

func (r *playlistRepository) editMembership(ctx context.Context, playlistID, stmt, videoID string) error {
	return r.db.WithTx(ctx, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, stmt, playlistID, videoID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE playlists SET updated_at = NOW() WHERE id = $1`, playlistID)
		return err
	})
}
