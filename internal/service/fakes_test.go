package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/storage"
)

// memoryUsers is an in-memory credential store.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*domain.User{}}
}

func (m *memoryUsers) add(user *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.users[user.ID] = user
	return user
}

func (m *memoryUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memoryUsers) storedToken(id string) *string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id].RefreshToken
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memoryUsers) get(id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id)
}

func (m *memoryUsers) GetByIdentity(_ context.Context, identity string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Username == identity || u.Email == identity {
			return m.get(id)
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) FindTaken(_ context.Context, username, email string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var usernameTaken, emailTaken bool
	for _, u := range m.users {
		usernameTaken = usernameTaken || u.Username == username
		emailTaken = emailTaken || u.Email == email
	}
	return usernameTaken, emailTaken, nil
}

func (m *memoryUsers) update(id string, apply func(*domain.User)) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	apply(u)
	return m.get(id)
}

func (m *memoryUsers) UpdateAccount(_ context.Context, id, fullName, email string) (*domain.User, error) {
	return m.update(id, func(u *domain.User) { u.FullName, u.Email = fullName, email })
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	_, err := m.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
	return err
}

func (m *memoryUsers) UpdateAvatar(_ context.Context, id, url string) (*domain.User, error) {
	return m.update(id, func(u *domain.User) { u.Avatar = url })
}

func (m *memoryUsers) UpdateCoverImage(_ context.Context, id, url string) (*domain.User, error) {
	return m.update(id, func(u *domain.User) { u.CoverImage = url })
}

func (m *memoryUsers) SetRefreshToken(_ context.Context, id string, token *string) error {
	_, err := m.update(id, func(u *domain.User) { u.RefreshToken = token })
	return err
}

func (m *memoryUsers) CompareAndSwapRefreshToken(_ context.Context, id, current, next string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != current {
		return false, nil
	}
	u.RefreshToken = &next
	return true, nil
}

// stubBlobs hands out a URL per path, or nil for paths listed in failing.
type stubBlobs struct {
	failing  map[string]bool
	uploaded []string
}

func (s *stubBlobs) Upload(_ context.Context, localPath string) *storage.UploadResult {
	if s.failing[localPath] {
		return nil
	}
	s.uploaded = append(s.uploaded, localPath)
	return &storage.UploadResult{URL: "https://cdn.example.com/" + localPath}
}
