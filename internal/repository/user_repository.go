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

const userColumns = `id, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at, updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var refreshToken sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.Avatar,
		&user.CoverImage,
		&user.PasswordHash,
		&refreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}

	return user, nil
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, full_name, avatar, cover_image, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.Avatar,
		user.CoverImage,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("user violates %s: %w", pqErr.Constraint, ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByIdentity retrieves a user by username or email
func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	return r.getOne(ctx, `username = $1 OR email = $1`, identity)
}

// FindTaken reports which of username and email already belong to an account
func (r *userRepository) FindTaken(ctx context.Context, username, email string) (bool, bool, error) {
	query := `
		SELECT
			COALESCE(BOOL_OR(username = $1), FALSE),
			COALESCE(BOOL_OR(email = $2), FALSE)
		FROM users
		WHERE username = $1 OR email = $2
	`

	var usernameTaken, emailTaken bool
	if err := r.db.DB.QueryRowContext(ctx, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return usernameTaken, emailTaken, nil
}

func (r *userRepository) updateReturning(ctx context.Context, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query+` RETURNING `+userColumns, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if pqErr, ok := isUniqueViolation(err); ok {
			return nil, fmt.Errorf("user violates %s: %w", pqErr.Constraint, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateAccount updates the profile fields of a user
func (r *userRepository) UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	return r.updateReturning(ctx,
		`UPDATE users SET full_name = $2, email = $3, updated_at = NOW() WHERE id = $1`,
		id, fullName, email,
	)
}

// UpdateAvatar replaces the avatar URL
func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) (*domain.User, error) {
	return r.updateReturning(ctx, `UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1`, id, url)
}

// UpdateCoverImage replaces the cover image URL
func (r *userRepository) UpdateCoverImage(ctx context.Context, id, url string) (*domain.User, error) {
	return r.updateReturning(ctx, `UPDATE users SET cover_image = $2, updated_at = NOW() WHERE id = $1`, id, url)
}

// UpdatePassword stores a new password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.execOne(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
}

// SetRefreshToken replaces or clears the stored refresh token
func (r *userRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	return r.execOne(ctx, `UPDATE users SET refresh_token = $2 WHERE id = $1`, id, token)
}

// CompareAndSwapRefreshToken atomically replaces current with next.
// It returns false when the stored token no longer equals current.
func (r *userRepository) CompareAndSwapRefreshToken(ctx context.Context, id, current, next string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3
		WHERE id = $1 AND refresh_token = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, current, next)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
