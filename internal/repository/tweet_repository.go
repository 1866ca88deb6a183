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

const tweetColumns = `id, owner_id, content, created_at, updated_at`

type tweetRepository struct {
	db *database.Postgres
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *database.Postgres) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES (:id, :owner_id, :content, :created_at, :updated_at)
	`, tweet)
	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.db.DB.GetContext(ctx, &tweet, `SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Tweet, error) {
	tweets := []*domain.Tweet{}
	err := r.db.DB.SelectContext(ctx, &tweets,
		`SELECT `+tweetColumns+` FROM tweets WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, id, content string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.db.DB.GetContext(ctx, &tweet,
		`UPDATE tweets SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING `+tweetColumns,
		id, content,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return expectOneRow(result)
}
