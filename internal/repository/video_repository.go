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

const videoColumns = `id, owner_id, video_file, thumbnail, title, description, duration, views, is_published, created_at, updated_at`

type videoRepository struct {
	db *database.Postgres
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.Postgres) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, video_file, thumbnail, title, description, duration, views, is_published, created_at, updated_at)
		VALUES (:id, :owner_id, :video_file, :thumbnail, :title, :description, :duration, :views, :is_published, :created_at, :updated_at)
	`

	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := r.db.DB.NamedExecContext(ctx, query, video); err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	err := r.db.DB.GetContext(ctx, &video, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `
		UPDATE videos
		SET title = :title, description = :description, thumbnail = :thumbnail, updated_at = NOW()
		WHERE id = :id
	`

	result, err := r.db.DB.NamedExecContext(ctx, query, video)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return expectOneRow(result)
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return expectOneRow(result)
}

func (r *videoRepository) TogglePublished(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	err := r.db.DB.GetContext(ctx, &video,
		`UPDATE videos SET is_published = NOT is_published, updated_at = NOW() WHERE id = $1 RETURNING `+videoColumns,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) RecordView(ctx context.Context, userID, videoID string) error {
	err := r.db.WithTx(ctx, nil, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, videoID,
		)
		if err != nil {
			return err
		}

		inserted, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if inserted == 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE watch_history SET watched_at = NOW() WHERE user_id = $1 AND video_id = $2`,
				userID, videoID,
			)
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, videoID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
