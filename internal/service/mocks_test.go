package service

import (
	"context"

	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockAggregate struct {
	mock.Mock
}

func (m *mockAggregate) UserExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAggregate) VideoExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAggregate) LikeTargetExists(ctx context.Context, target domain.LikeTarget, id string) (bool, error) {
	args := m.Called(ctx, target, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAggregate) CountComments(ctx context.Context, videoID string) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAggregate) ListComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentWithOwner, error) {
	args := m.Called(ctx, videoID, limit, offset)
	items, _ := args.Get(0).([]domain.CommentWithOwner)
	return items, args.Error(1)
}

func (m *mockAggregate) CountVideos(ctx context.Context, q domain.VideoQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAggregate) ListVideos(ctx context.Context, q domain.VideoQuery, limit, offset int) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, q, limit, offset)
	items, _ := args.Get(0).([]domain.VideoWithOwner)
	return items, args.Error(1)
}

func (m *mockAggregate) ChannelVideos(ctx context.Context, ownerID string) ([]domain.Video, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]domain.Video)
	return items, args.Error(1)
}

func (m *mockAggregate) CountWatchHistory(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAggregate) WatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, userID, limit, offset)
	items, _ := args.Get(0).([]domain.VideoWithOwner)
	return items, args.Error(1)
}

func (m *mockAggregate) CountLikedVideos(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAggregate) LikedVideos(ctx context.Context, userID string, limit, offset int) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, userID, limit, offset)
	items, _ := args.Get(0).([]domain.VideoWithOwner)
	return items, args.Error(1)
}

func (m *mockAggregate) ChannelStats(ctx context.Context, ownerID string) (*domain.ChannelStats, error) {
	args := m.Called(ctx, ownerID)
	stats, _ := args.Get(0).(*domain.ChannelStats)
	return stats, args.Error(1)
}

func (m *mockAggregate) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	profile, _ := args.Get(0).(*domain.ChannelProfile)
	return profile, args.Error(1)
}

func (m *mockAggregate) Subscribers(ctx context.Context, channelID string) ([]domain.UserSummary, error) {
	args := m.Called(ctx, channelID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func (m *mockAggregate) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.UserSummary, error) {
	args := m.Called(ctx, subscriberID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

type mockVideos struct {
	mock.Mock
}

func (m *mockVideos) Create(ctx context.Context, video *domain.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideos) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*domain.Video)
	return video, args.Error(1)
}

func (m *mockVideos) Update(ctx context.Context, video *domain.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideos) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVideos) TogglePublished(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*domain.Video)
	return video, args.Error(1)
}

func (m *mockVideos) RecordView(ctx context.Context, userID, videoID string) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

type mockComments struct {
	mock.Mock
}

func (m *mockComments) Create(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockComments) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *mockComments) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *mockComments) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLikes struct {
	mock.Mock
}

func (m *mockLikes) Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	args := m.Called(ctx, userID, target, targetID)
	return args.Bool(0), args.Error(1)
}

type mockTweets struct {
	mock.Mock
}

func (m *mockTweets) Create(ctx context.Context, tweet *domain.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *mockTweets) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	args := m.Called(ctx, id)
	tweet, _ := args.Get(0).(*domain.Tweet)
	return tweet, args.Error(1)
}

func (m *mockTweets) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Tweet, error) {
	args := m.Called(ctx, ownerID)
	tweets, _ := args.Get(0).([]*domain.Tweet)
	return tweets, args.Error(1)
}

func (m *mockTweets) Update(ctx context.Context, id, content string) (*domain.Tweet, error) {
	args := m.Called(ctx, id, content)
	tweet, _ := args.Get(0).(*domain.Tweet)
	return tweet, args.Error(1)
}

func (m *mockTweets) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPlaylists struct {
	mock.Mock
}

func (m *mockPlaylists) Create(ctx context.Context, playlist *domain.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *mockPlaylists) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	args := m.Called(ctx, id)
	playlist, _ := args.Get(0).(*domain.Playlist)
	return playlist, args.Error(1)
}

func (m *mockPlaylists) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	args := m.Called(ctx, ownerID)
	playlists, _ := args.Get(0).([]*domain.Playlist)
	return playlists, args.Error(1)
}

func (m *mockPlaylists) Update(ctx context.Context, id, name, description string) (*domain.Playlist, error) {
	args := m.Called(ctx, id, name, description)
	playlist, _ := args.Get(0).(*domain.Playlist)
	return playlist, args.Error(1)
}

func (m *mockPlaylists) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPlaylists) AddVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID)
	playlist, _ := args.Get(0).(*domain.Playlist)
	return playlist, args.Error(1)
}

func (m *mockPlaylists) RemoveVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	args := m.Called(ctx, playlistID, videoID)
	playlist, _ := args.Get(0).(*domain.Playlist)
	return playlist, args.Error(1)
}
