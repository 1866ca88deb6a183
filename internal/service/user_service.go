package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/storage"
	"github.com/prperemyshlev/videotube/internal/utils"
)

type userService struct {
	userRepo repository.UserRepository
	blobs    storage.BlobStore
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, blobs storage.BlobStore) UserService {
	return &userService{userRepo: userRepo, blobs: blobs}
}

func (s *userService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.PublicUser, error) {
	if utils.Blank(fullName, email) {
		return nil, domain.Validation("all fields are required")
	}

	email = utils.Normalize(email)
	if !utils.ValidateEmail(email) {
		return nil, domain.Validation("email is not a valid address")
	}

	user, err := s.userRepo.UpdateAccount(ctx, userID, strings.TrimSpace(fullName), email)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.Conflict("email is already in use")
		}
		return nil, storeError(err, "user")
	}

	return user.Public(), nil
}

func (s *userService) upload(ctx context.Context, localPath, what string) (string, error) {
	if localPath == "" {
		return "", domain.Validation(what + " file is missing")
	}
	result := s.blobs.Upload(ctx, localPath)
	if result == nil {
		return "", domain.Validation("error while uploading " + what)
	}
	return result.URL, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.PublicUser, error) {
	url, err := s.upload(ctx, localPath, "avatar")
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user.Public(), nil
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.PublicUser, error) {
	url, err := s.upload(ctx, localPath, "cover image")
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user.Public(), nil
}
