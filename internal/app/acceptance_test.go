package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/config"
	"github.com/prperemyshlev/videotube/internal/service"
	"github.com/prperemyshlev/videotube/internal/storage"
	"github.com/prperemyshlev/videotube/migrations"
	"github.com/prperemyshlev/videotube/pkg/database"
	"github.com/prperemyshlev/videotube/pkg/observability"
	"github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// AcceptanceSuite drives the full HTTP stack against real Postgres and Redis
// containers. It needs Docker and runs only with VIDEOTUBE_ACCEPTANCE=1.
type AcceptanceSuite struct {
	suite.Suite
	ctx        context.Context
	containers []tc.Container
	postgres   *database.Postgres
	redis      *database.Redis
	server     *httptest.Server
}

func TestAcceptanceSuite(t *testing.T) {
	if os.Getenv("VIDEOTUBE_ACCEPTANCE") != "1" {
		t.Skip("set VIDEOTUBE_ACCEPTANCE=1 to run acceptance tests")
	}
	suite.Run(t, new(AcceptanceSuite))
}

func (s *AcceptanceSuite) startContainer(image, port string, env map[string]string) string {
	container, err := tc.GenericContainer(s.ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        image,
			Env:          env,
			ExposedPorts: []string{port + "/tcp"},
			WaitingFor:   wait.ForListeningPort(nat.Port(port + "/tcp")).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.containers = append(s.containers, container)

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)
	return endpoint
}

func (s *AcceptanceSuite) SetupSuite() {
	s.ctx = context.Background()

	pgAddr := s.startContainer("postgres:16-alpine", "5432", map[string]string{
		"POSTGRES_USER":     "videotube",
		"POSTGRES_PASSWORD": "videotube_password",
		"POSTGRES_DB":       "videotube",
	})
	redisAddr := s.startContainer("redis:7-alpine", "6379", nil)

	dsn := fmt.Sprintf("postgres://videotube:videotube_password@%s/videotube?sslmode=disable", pgAddr)
	var err error
	for attempt := 0; attempt < 10; attempt++ {
		if s.postgres, err = database.NewPostgres(s.ctx, dsn); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	s.Require().NoError(err)
	s.Require().NoError(s.postgres.Migrate(migrations.FS))

	s.redis, err = database.NewRedis(s.ctx, database.RedisOptions{Addr: redisAddr, KeyPrefix: "videotube-test"})
	s.Require().NoError(err)

	meterProvider, metricsHandler, err := observability.InitTelemetry("videotube-test")
	s.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	infra := &testInfrastructure{
		postgres:       s.postgres,
		redis:          s.redis,
		blobs:          localBlobs{},
		logger:         zap.NewNop(),
		metricsHandler: metricsHandler,
		meterProvider:  meterProvider,
	}

	application, err := NewApp(infra, s.testConfig())
	s.Require().NoError(err)
	s.server = httptest.NewServer(application.Router())
}

func (s *AcceptanceSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.postgres != nil {
		_ = s.postgres.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	for _, container := range s.containers {
		_ = container.Terminate(context.Background())
	}
}

func (s *AcceptanceSuite) SetupTest() {
	_, err := s.postgres.DB.ExecContext(s.ctx, `TRUNCATE users CASCADE`)
	s.Require().NoError(err)
	s.Require().NoError(s.redis.Client.FlushDB(s.ctx).Err())
}

func (s *AcceptanceSuite) testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "0"},
		JWT: config.JWTConfig{
			AccessSecret:       "acceptance-access-secret-of-32-chars!!",
			RefreshSecret:      "acceptance-refresh-secret-of-32-chars!",
			AccessTokenExpiry:  config.Duration{Duration: 15 * time.Minute},
			RefreshTokenExpiry: config.Duration{Duration: 24 * time.Hour},
		},
		Security: config.SecurityConfig{
			BCryptCost:        4,
			RateLimitRequests: 100,
			RateLimitWindow:   config.Duration{Duration: time.Minute},
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Upload: config.UploadConfig{TempDir: s.T().TempDir(), MaxSize: 10 << 20},
		Env:    "test",
	}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func (s *AcceptanceSuite) do(client *http.Client, req *http.Request, out any) int {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(body, &env), string(body))
	if out != nil && env.Success {
		s.Require().NoError(json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func (s *AcceptanceSuite) jsonRequest(method, path, token string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (s *AcceptanceSuite) multipartRequest(method, path, token string, fields, files map[string]string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		s.Require().NoError(w.WriteField(name, value))
	}
	for name, filename := range files {
		part, err := w.CreateFormFile(name, filename)
		s.Require().NoError(err)
		_, err = part.Write([]byte("fake " + name))
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type session struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AcceptanceSuite) register(username string) int {
	return s.do(nil, s.multipartRequest(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"fullName": "Test " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, map[string]string{"avatar": "avatar.png"}), nil)
}

func (s *AcceptanceSuite) login(username string) session {
	var out session
	code := s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": username,
		"password": "password123",
	}), &out)
	s.Require().Equal(http.StatusOK, code)
	return out
}

func (s *AcceptanceSuite) TestHealth() {
	s.Equal(http.StatusOK, s.do(nil, s.jsonRequest(http.MethodGet, "/health", "", nil), nil))
}

func (s *AcceptanceSuite) TestRegisterDuplicateUsername() {
	s.Equal(http.StatusCreated, s.register("alice"))
	s.Equal(http.StatusConflict, s.register("alice"))

	var count int
	s.Require().NoError(s.postgres.DB.GetContext(s.ctx, &count, `SELECT COUNT(*) FROM users`))
	s.Equal(1, count)
}

func (s *AcceptanceSuite) TestRefreshRotationAndReuse() {
	s.Require().Equal(http.StatusCreated, s.register("alice"))
	first := s.login("alice")

	var rotated session
	code := s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", "",
		map[string]string{"refreshToken": first.RefreshToken}), &rotated)
	s.Require().Equal(http.StatusOK, code)
	s.NotEqual(first.RefreshToken, rotated.RefreshToken)

	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", "",
		map[string]string{"refreshToken": first.RefreshToken}), nil)
	s.Equal(http.StatusUnauthorized, code)

	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/users/logout", rotated.AccessToken, nil), nil)
	s.Require().Equal(http.StatusOK, code)

	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", "",
		map[string]string{"refreshToken": rotated.RefreshToken}), nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *AcceptanceSuite) TestCookieSession() {
	s.Require().Equal(http.StatusCreated, s.register("alice"))

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	client := &http.Client{Jar: jar}

	code := s.do(client, s.jsonRequest(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}), nil)
	s.Require().Equal(http.StatusOK, code)

	var me struct {
		Username string `json:"username"`
	}
	code = s.do(client, s.jsonRequest(http.MethodGet, "/api/v1/users/current-user", "", nil), &me)
	s.Require().Equal(http.StatusOK, code)
	s.Equal("alice", me.Username)
}

func (s *AcceptanceSuite) TestVideoViewsAndChannelStats() {
	s.Require().Equal(http.StatusCreated, s.register("alice"))
	s.Require().Equal(http.StatusCreated, s.register("bob"))
	alice := s.login("alice")
	bob := s.login("bob")

	var video struct {
		ID string `json:"id"`
	}
	code := s.do(nil, s.multipartRequest(http.MethodPost, "/api/v1/videos", alice.AccessToken,
		map[string]string{"title": "Intro", "description": "First video"},
		map[string]string{"videoFile": "intro.mp4", "thumbnail": "intro.png"},
	), &video)
	s.Require().Equal(http.StatusCreated, code)

	for i := 0; i < 2; i++ {
		code = s.do(nil, s.jsonRequest(http.MethodGet, "/api/v1/videos/"+video.ID, bob.AccessToken, nil), nil)
		s.Require().Equal(http.StatusOK, code)
	}

	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+video.ID, bob.AccessToken, nil), nil)
	s.Require().Equal(http.StatusOK, code)
	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/subscriptions/c/"+alice.User.ID, bob.AccessToken, nil), nil)
	s.Require().Equal(http.StatusOK, code)

	var stats struct {
		TotalVideos      int64 `json:"totalVideos"`
		TotalSubscribers int64 `json:"totalSubscribers"`
		TotalViews       int64 `json:"totalViews"`
		TotalLikes       int64 `json:"totalLikes"`
	}
	code = s.do(nil, s.jsonRequest(http.MethodGet, "/api/v1/dashboard/stats/"+alice.User.ID, alice.AccessToken, nil), &stats)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(int64(1), stats.TotalVideos)
	s.Equal(int64(1), stats.TotalSubscribers)
	s.Equal(int64(1), stats.TotalViews)
	s.Zero(stats.TotalLikes, "likes received are not likes given")

	var history struct {
		TotalCount int64 `json:"totalCount"`
	}
	code = s.do(nil, s.jsonRequest(http.MethodGet, "/api/v1/users/history?page=1&limit=10", bob.AccessToken, nil), &history)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(int64(1), history.TotalCount)
}

func (s *AcceptanceSuite) publish(token, title string) string {
	var video struct {
		ID string `json:"id"`
	}
	code := s.do(nil, s.multipartRequest(http.MethodPost, "/api/v1/videos", token,
		map[string]string{"title": title, "description": title + " description"},
		map[string]string{"videoFile": "clip.mp4", "thumbnail": "clip.png"},
	), &video)
	s.Require().Equal(http.StatusCreated, code)
	return video.ID
}

func (s *AcceptanceSuite) TestChannelStatsTotals() {
	for _, name := range []string{"alice", "bob", "carol"} {
		s.Require().Equal(http.StatusCreated, s.register(name))
	}
	alice := s.login("alice")
	bob := s.login("bob")
	carol := s.login("carol")

	var likeTargets []string
	for i, views := range []int{5, 10, 15} {
		id := s.publish(alice.AccessToken, fmt.Sprintf("Video %d", i+1))
		_, err := s.postgres.DB.ExecContext(s.ctx, `UPDATE videos SET views = $2 WHERE id = $1`, id, views)
		s.Require().NoError(err)
		likeTargets = append(likeTargets, "/api/v1/likes/toggle/v/"+id)
	}

	var tweet struct {
		ID string `json:"id"`
	}
	code := s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/tweets", alice.AccessToken,
		map[string]string{"content": "three videos up"}), &tweet)
	s.Require().Equal(http.StatusCreated, code)
	likeTargets = append(likeTargets, "/api/v1/likes/toggle/t/"+tweet.ID)

	for _, path := range likeTargets {
		code = s.do(nil, s.jsonRequest(http.MethodPost, path, alice.AccessToken, nil), nil)
		s.Require().Equal(http.StatusOK, code)
	}
	code = s.do(nil, s.jsonRequest(http.MethodPost, likeTargets[0], bob.AccessToken, nil), nil)
	s.Require().Equal(http.StatusOK, code)

	for _, subscriber := range []session{bob, carol} {
		code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/subscriptions/c/"+alice.User.ID, subscriber.AccessToken, nil), nil)
		s.Require().Equal(http.StatusOK, code)
	}

	var stats struct {
		TotalVideos      int64 `json:"totalVideos"`
		TotalSubscribers int64 `json:"totalSubscribers"`
		TotalViews       int64 `json:"totalViews"`
		TotalLikes       int64 `json:"totalLikes"`
	}
	code = s.do(nil, s.jsonRequest(http.MethodGet, "/api/v1/dashboard/stats/"+alice.User.ID, alice.AccessToken, nil), &stats)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(int64(3), stats.TotalVideos)
	s.Equal(int64(2), stats.TotalSubscribers)
	s.Equal(int64(30), stats.TotalViews)
	s.Equal(int64(4), stats.TotalLikes)
}

func (s *AcceptanceSuite) TestForeignVideoDelete() {
	s.Require().Equal(http.StatusCreated, s.register("alice"))
	s.Require().Equal(http.StatusCreated, s.register("bob"))
	alice := s.login("alice")
	bob := s.login("bob")

	var video struct {
		ID string `json:"id"`
	}
	code := s.do(nil, s.multipartRequest(http.MethodPost, "/api/v1/videos", alice.AccessToken,
		map[string]string{"title": "Intro", "description": "First video"},
		map[string]string{"videoFile": "intro.mp4", "thumbnail": "intro.png"},
	), &video)
	s.Require().Equal(http.StatusCreated, code)

	code = s.do(nil, s.jsonRequest(http.MethodDelete, "/api/v1/videos/"+video.ID, bob.AccessToken, nil), nil)
	s.Equal(http.StatusForbidden, code)
}

func (s *AcceptanceSuite) TestRateLimiterWindow() {
	limiter := service.NewRateLimiter(s.redis)

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(s.ctx, "login:203.0.113.7", 3, time.Minute)
		s.Require().NoError(err)
		s.True(decision.Allowed)
		s.Equal(2-i, decision.Remaining)
	}

	decision, err := limiter.Allow(s.ctx, "login:203.0.113.7", 3, time.Minute)
	s.Require().NoError(err)
	s.False(decision.Allowed)
	s.Positive(decision.RetryAfter)

	decision, err = limiter.Allow(s.ctx, "login:198.51.100.1", 3, time.Minute)
	s.Require().NoError(err)
	s.True(decision.Allowed, "keys are limited independently")

	n, err := s.redis.Client.Exists(s.ctx, "videotube-test:ratelimit:login:203.0.113.7").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *AcceptanceSuite) TestPlaylistAndTweets() {
	s.Require().Equal(http.StatusCreated, s.register("alice"))
	alice := s.login("alice")

	var video struct {
		ID string `json:"id"`
	}
	code := s.do(nil, s.multipartRequest(http.MethodPost, "/api/v1/videos", alice.AccessToken,
		map[string]string{"title": "Intro", "description": "First video"},
		map[string]string{"videoFile": "intro.mp4", "thumbnail": "intro.png"},
	), &video)
	s.Require().Equal(http.StatusCreated, code)

	var playlist struct {
		ID     string   `json:"id"`
		Videos []string `json:"videos"`
	}
	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/playlists", alice.AccessToken,
		map[string]string{"name": "Favourites", "description": "best of"}), &playlist)
	s.Require().Equal(http.StatusCreated, code)

	code = s.do(nil, s.jsonRequest(http.MethodPatch,
		"/api/v1/playlists/add/"+video.ID+"/"+playlist.ID, alice.AccessToken, nil), &playlist)
	s.Require().Equal(http.StatusOK, code)
	s.Equal([]string{video.ID}, playlist.Videos)

	code = s.do(nil, s.jsonRequest(http.MethodPost, "/api/v1/tweets", alice.AccessToken,
		map[string]string{"content": "new video is up"}), nil)
	s.Require().Equal(http.StatusCreated, code)
}

// localBlobs pretends every readable file was uploaded.
type localBlobs struct{}

func (localBlobs) Upload(_ context.Context, localPath string) *storage.UploadResult {
	if _, err := os.Stat(localPath); err != nil {
		return nil
	}
	return &storage.UploadResult{URL: "https://cdn.example.com/" + filepath.Base(localPath)}
}

type testInfrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	blobs          storage.BlobStore
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider
}

func (i *testInfrastructure) Postgres() *database.Postgres  { return i.postgres }
func (i *testInfrastructure) Redis() *database.Redis        { return i.redis }
func (i *testInfrastructure) BlobStore() storage.BlobStore  { return i.blobs }
func (i *testInfrastructure) Logger() *zap.Logger           { return i.logger }
func (i *testInfrastructure) MetricsHandler() http.Handler  { return i.metricsHandler }
func (i *testInfrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

func (i *testInfrastructure) Shutdown(ctx context.Context) error {
	return observability.Shutdown(ctx, i.meterProvider, i.logger)
}
