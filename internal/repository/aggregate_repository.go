package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/pkg/database"
)

const videoWithOwnerColumns = `
	v.id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description,
	v.duration, v.views, v.is_published, v.created_at, v.updated_at,
	u.id AS "owner.id", u.username AS "owner.username",
	u.full_name AS "owner.full_name", u.avatar AS "owner.avatar"
`

var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// likeEscaper makes user input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type aggregateRepository struct {
	db *database.Postgres
}

// NewAggregateRepository creates the read-side repository
func NewAggregateRepository(db *database.Postgres) AggregateRepository {
	return &aggregateRepository{db: db}
}

func (r *aggregateRepository) exists(ctx context.Context, table, id string) (bool, error) {
	var found bool
	err := r.db.DB.GetContext(ctx, &found, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return found, nil
}

func (r *aggregateRepository) UserExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "users", id)
}

func (r *aggregateRepository) VideoExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "videos", id)
}

func (r *aggregateRepository) LikeTargetExists(ctx context.Context, target domain.LikeTarget, id string) (bool, error) {
	table := target.Table()
	if table == "" {
		return false, fmt.Errorf("unknown like target %q", target)
	}
	return r.exists(ctx, table, id)
}

func (r *aggregateRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.DB.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return total, nil
}

func (r *aggregateRepository) CountComments(ctx context.Context, videoID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID)
}

func (r *aggregateRepository) ListComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentWithOwner, error) {
	query := `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
			u.id AS "owner.id", u.username AS "owner.username",
			u.full_name AS "owner.full_name", u.avatar AS "owner.avatar"
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.id
		LIMIT $2 OFFSET $3
	`

	comments := []domain.CommentWithOwner{}
	if err := r.db.DB.SelectContext(ctx, &comments, query, videoID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func videoFilter(q domain.VideoQuery) (string, []any) {
	conds := []string{"v.is_published = TRUE"}
	args := []any{}

	if q.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Query)+"%")
		conds = append(conds, fmt.Sprintf(`(v.title ILIKE $%d ESCAPE '\' OR v.description ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		conds = append(conds, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func videoOrder(q domain.VideoQuery) string {
	column, ok := videoSortColumns[q.SortBy]
	if !ok {
		column = "v.created_at"
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction + ", v.id"
}

func (r *aggregateRepository) CountVideos(ctx context.Context, q domain.VideoQuery) (int64, error) {
	where, args := videoFilter(q)
	return r.count(ctx, `SELECT COUNT(*) FROM videos v`+where, args...)
}

func (r *aggregateRepository) ListVideos(ctx context.Context, q domain.VideoQuery, limit, offset int) ([]domain.VideoWithOwner, error) {
	where, args := videoFilter(q)
	args = append(args, limit, offset)

	query := `SELECT ` + videoWithOwnerColumns + ` FROM videos v JOIN users u ON u.id = v.owner_id` +
		where + videoOrder(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	videos := []domain.VideoWithOwner{}
	if err := r.db.DB.SelectContext(ctx, &videos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (r *aggregateRepository) ChannelVideos(ctx context.Context, ownerID string) ([]domain.Video, error) {
	videos := []domain.Video{}
	err := r.db.DB.SelectContext(ctx, &videos,
		`SELECT `+videoColumns+` FROM videos WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}
	return videos, nil
}

func (r *aggregateRepository) CountWatchHistory(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM watch_history WHERE user_id = $1`, userID)
}

func (r *aggregateRepository) WatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
		LIMIT $2 OFFSET $3
	`

	videos := []domain.VideoWithOwner{}
	if err := r.db.DB.SelectContext(ctx, &videos, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	return videos, nil
}

func (r *aggregateRepository) CountLikedVideos(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM likes WHERE liked_by = $1 AND video_id IS NOT NULL`, userID)
}

func (r *aggregateRepository) LikedVideos(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.liked_by = $1
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	videos := []domain.VideoWithOwner{}
	if err := r.db.DB.SelectContext(ctx, &videos, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to load liked videos: %w", err)
	}
	return videos, nil
}

// ChannelStats counts every like the owner has given, on videos, comments and tweets.
func (r *aggregateRepository) ChannelStats(ctx context.Context, ownerID string) (*domain.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = u.id) AS total_videos,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = u.id) AS total_subscribers,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = u.id) AS total_views,
			(SELECT COUNT(*) FROM likes WHERE liked_by = u.id) AS total_likes
		FROM users u
		WHERE u.id = $1
	`

	var stats domain.ChannelStats
	if err := r.db.DB.GetContext(ctx, &stats, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to compute channel stats: %w", err)
	}
	return &stats, nil
}

func (r *aggregateRepository) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = u.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = u.id) AS channels_subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = u.id AND subscriber_id = $2) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`

	var profile domain.ChannelProfile
	if err := r.db.DB.GetContext(ctx, &profile, query, username, viewerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load channel profile: %w", err)
	}
	return &profile, nil
}

func (r *aggregateRepository) relation(ctx context.Context, joinColumn, filterColumn, id string) ([]domain.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar
		FROM subscriptions s
		JOIN users u ON u.id = s.` + joinColumn + `
		WHERE s.` + filterColumn + ` = $1
		ORDER BY s.created_at, s.id
	`

	users := []domain.UserSummary{}
	if err := r.db.DB.SelectContext(ctx, &users, query, id); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return users, nil
}

func (r *aggregateRepository) Subscribers(ctx context.Context, channelID string) ([]domain.UserSummary, error) {
	return r.relation(ctx, "subscriber_id", "channel_id", channelID)
}

func (r *aggregateRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.UserSummary, error) {
	return r.relation(ctx, "channel_id", "subscriber_id", subscriberID)
}
