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

const commentColumns = `id, video_id, owner_id, content, created_at, updated_at`

type commentRepository struct {
	db *database.Postgres
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.Postgres) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES (:id, :video_id, :owner_id, :content, :created_at, :updated_at)
	`, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.DB.GetContext(ctx, &comment, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.DB.GetContext(ctx, &comment,
		`UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING `+commentColumns,
		id, content,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return expectOneRow(result)
}
