package service

import (
	"errors"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
)

// storeError translates a repository failure into a domain error.
func storeError(err error, what string) error {
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return domain.NotFound(what + " not found")
	case errors.Is(err, repository.ErrConflict):
		return domain.Conflict(what + " already exists")
	default:
		return domain.Internal("failed to access "+what, err)
	}
}

func requireID(id, what string) error {
	if !validID(id) {
		return domain.Validation("invalid " + what + " id")
	}
	return nil
}
