package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/storage"
	"github.com/prperemyshlev/videotube/internal/utils"
	"go.uber.org/zap"
)

const (
	invalidCredentials = "invalid credentials"
	passwordRule       = "password must be 8 to 72 bytes long"
)

var validID = utils.ValidateID

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	tokens     TokenService
	blobs      storage.BlobStore
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	blobs storage.BlobStore,
	bcryptCost int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		blobs:      blobs,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account. The avatar is mandatory, the cover image is not.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.PublicUser, error) {
	if utils.Blank(in.FullName, in.Username, in.Email, in.Password) {
		return nil, domain.Validation("all fields are required")
	}

	username := utils.Normalize(in.Username)
	email := utils.Normalize(in.Email)

	var details []string
	if !utils.ValidateUsername(username) {
		details = append(details, "username must be 3-30 characters of letters, digits, '.' or '_'")
	}
	if !utils.ValidateEmail(email) {
		details = append(details, "email is not a valid address")
	}
	if !utils.ValidatePassword(in.Password) {
		details = append(details, passwordRule)
	}
	if len(details) > 0 {
		return nil, domain.Validation("invalid registration data", details...)
	}

	usernameTaken, emailTaken, err := s.userRepo.FindTaken(ctx, username, email)
	if err != nil {
		return nil, domain.Internal("failed to check user existence", err)
	}
	if usernameTaken || emailTaken {
		return nil, domain.Conflict("user with email or username already exists")
	}

	if in.AvatarPath == "" {
		return nil, domain.Validation("avatar file is required")
	}
	avatar := s.blobs.Upload(ctx, in.AvatarPath)
	if avatar == nil {
		return nil, domain.Validation("avatar file is required")
	}

	var coverImage string
	if in.CoverImagePath != "" {
		if cover := s.blobs.Upload(ctx, in.CoverImagePath); cover != nil {
			coverImage = cover.URL
		}
	}

	passwordHash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Avatar:       avatar.URL,
		CoverImage:   coverImage,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.Conflict("user with email or username already exists")
		}
		return nil, domain.Internal("failed to create user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user.Public(), nil
}

// Login checks credentials and issues a token pair.
// Unknown users and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, identity, password string) (*LoginResult, error) {
	identity = utils.Normalize(identity)
	if identity == "" || password == "" {
		return nil, domain.Validation("username or email and password are required")
	}

	user, err := s.userRepo.GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized(invalidCredentials)
		}
		return nil, domain.Internal("failed to get user", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, domain.Unauthorized(invalidCredentials)
	}
	s.rehashPassword(ctx, user, password)

	pair, err := s.tokens.IssuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user.Public(), Tokens: pair}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	return s.tokens.Rotate(ctx, refreshToken)
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.tokens.Revoke(ctx, userID)
}

func (s *authService) hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", domain.Validation(passwordRule)
	}
	if err != nil {
		return "", domain.Internal("failed to hash password", err)
	}
	return hash, nil
}

// rehashPassword upgrades a stored hash made with an older bcrypt cost.
// Failures only cost the upgrade, never the login.
func (s *authService) rehashPassword(ctx context.Context, user *domain.User, password string) {
	if !utils.NeedsRehash(user.PasswordHash, s.bcryptCost) {
		return
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err == nil {
		err = s.userRepo.UpdatePassword(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn("failed to upgrade password hash", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	user.PasswordHash = hash
}

// ChangePassword replaces the password and ends the current refresh session.
func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return storeError(err, "user")
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return domain.Validation("invalid old password")
	}
	if !utils.ValidatePassword(newPassword) {
		return domain.Validation(passwordRule)
	}

	passwordHash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return storeError(err, "user")
	}

	return s.tokens.Revoke(ctx, userID)
}

// Authenticate verifies an access token and loads the user it belongs to.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.PublicUser, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, domain.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized("invalid access token")
		}
		return nil, domain.Internal("failed to load user", err)
	}

	return user.Public(), nil
}
