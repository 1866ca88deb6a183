package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/pkg/database"
)

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

type likeRepository struct {
	db *database.Postgres
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *database.Postgres) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	column := target.Column()
	if column == "" {
		return false, fmt.Errorf("unknown like target %q", target)
	}

	var liked bool
	err := r.db.WithTx(ctx, serializable, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE liked_by = $1 AND `+column+` = $2`,
			userID, targetID,
		)
		if err != nil {
			return err
		}

		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if removed > 0 {
			liked = false
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO likes (id, liked_by, `+column+`) VALUES ($1, $2, $3)`,
			uuid.New().String(), userID, targetID,
		)
		liked = err == nil
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	return liked, nil
}

type subscriptionRepository struct {
	db *database.Postgres
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *database.Postgres) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var subscribed bool
	err := r.db.WithTx(ctx, serializable, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
			subscriberID, channelID,
		)
		if err != nil {
			return err
		}

		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if removed > 0 {
			subscribed = false
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO subscriptions (id, subscriber_id, channel_id) VALUES ($1, $2, $3)`,
			uuid.New().String(), subscriberID, channelID,
		)
		subscribed = err == nil
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	return subscribed, nil
}
