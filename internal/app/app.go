package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/config"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/handler"
	"github.com/prperemyshlev/videotube/internal/repository"
	"github.com/prperemyshlev/videotube/internal/service"
	"github.com/prperemyshlev/videotube/internal/utils"
	"github.com/prperemyshlev/videotube/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth      *handler.AuthHandler
	user      *handler.UserHandler
	video     *handler.VideoHandler
	comment   *handler.CommentHandler
	social    *handler.SocialHandler
	playlist  *handler.PlaylistHandler
	tweet     *handler.TweetHandler
	dashboard *handler.DashboardHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	logger := infra.Logger()
	repos := repository.NewRepositories(infra.Postgres())

	tokenManager := utils.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	tokenMetrics, err := service.NewTokenMetrics(infra.MeterProvider().Meter(serviceName))
	if err != nil {
		return nil, err
	}

	uploads, err := handler.NewUploads(cfg.Upload.TempDir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	tokenService := service.NewTokenService(repos.User, tokenManager, tokenMetrics, logger)
	authService := service.NewAuthService(repos.User, tokenService, infra.BlobStore(), cfg.Security.BCryptCost, logger)
	aggregator := service.NewAggregator(repos.Aggregate)
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(map[string]Pinger{
		"postgres": infra.Postgres(),
		"redis":    infra.Redis(),
	}, logger)

	cookies := handler.NewSessionCookies(cfg.Cookie, tokenManager.AccessTokenExpiry(), tokenManager.RefreshTokenExpiry())

	h := handlers{
		auth: handler.NewAuthHandler(authService, cookies, uploads),
		user: handler.NewUserHandler(
			service.NewUserService(repos.User, infra.BlobStore()), aggregator, uploads,
		),
		video: handler.NewVideoHandler(
			service.NewVideoService(repos.Video, infra.BlobStore(), logger), aggregator, uploads,
		),
		comment: handler.NewCommentHandler(service.NewCommentService(repos.Comment, repos.Video), aggregator),
		social: handler.NewSocialHandler(
			service.NewLikeService(repos.Like, repos.Aggregate),
			service.NewSubscriptionService(repos.Subscription, repos.Aggregate),
			aggregator,
		),
		playlist:  handler.NewPlaylistHandler(service.NewPlaylistService(repos.Playlist, repos.Video)),
		tweet:     handler.NewTweetHandler(service.NewTweetService(repos.Tweet)),
		dashboard: handler.NewDashboardHandler(aggregator),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.MaxMultipartMemory = 8 << 20

	authLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
		logger,
	)

	setupRoutes(router, h, handler.AuthMiddleware(authService), authLimit, uploads.LimitBody(), healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	h handlers,
	requireAuth gin.HandlerFunc,
	authLimit gin.HandlerFunc,
	limitUpload gin.HandlerFunc,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authLimit, limitUpload, h.auth.Register)
			users.POST("/login", authLimit, h.auth.Login)
			users.POST("/refresh-token", authLimit, h.auth.RefreshToken)

			secured := users.Group("", requireAuth)
			secured.POST("/logout", h.auth.Logout)
			secured.POST("/change-password", h.auth.ChangePassword)
			secured.GET("/current-user", h.auth.CurrentUser)
			secured.PATCH("/update-account", h.user.UpdateAccount)
			secured.PATCH("/avatar", limitUpload, h.user.UpdateAvatar)
			secured.PATCH("/cover-image", limitUpload, h.user.UpdateCoverImage)
			secured.GET("/c/:username", h.user.ChannelProfile)
			secured.GET("/history", h.user.WatchHistory)
		}

		videos := api.Group("/videos", requireAuth)
		{
			videos.GET("", h.video.List)
			videos.POST("", limitUpload, h.video.Publish)
			videos.GET("/:videoId", h.video.Get)
			videos.PATCH("/:videoId", limitUpload, h.video.Update)
			videos.DELETE("/:videoId", h.video.Delete)
			videos.PATCH("/toggle/publish/:videoId", h.video.TogglePublish)
		}

		comments := api.Group("/comments", requireAuth)
		{
			comments.GET("/:videoId", h.comment.List)
			comments.POST("/:videoId", h.comment.Add)
			comments.PATCH("/c/:commentId", h.comment.Update)
			comments.DELETE("/c/:commentId", h.comment.Delete)
		}

		likes := api.Group("/likes", requireAuth)
		{
			likes.POST("/toggle/v/:videoId", h.social.ToggleLike(domain.LikeTargetVideo, "videoId"))
			likes.POST("/toggle/c/:commentId", h.social.ToggleLike(domain.LikeTargetComment, "commentId"))
			likes.POST("/toggle/t/:tweetId", h.social.ToggleLike(domain.LikeTargetTweet, "tweetId"))
			likes.GET("/videos", h.social.LikedVideos)
		}

		subscriptions := api.Group("/subscriptions", requireAuth)
		{
			subscriptions.POST("/c/:channelId", h.social.ToggleSubscription)
			subscriptions.GET("/c/:channelId", h.social.Subscribers)
			subscriptions.GET("/u/:subscriberId", h.social.SubscribedChannels)
		}

		playlists := api.Group("/playlists", requireAuth)
		{
			playlists.POST("", h.playlist.Create)
			playlists.GET("/:playlistId", h.playlist.Get)
			playlists.PATCH("/:playlistId", h.playlist.Update)
			playlists.DELETE("/:playlistId", h.playlist.Delete)
			playlists.PATCH("/add/:videoId/:playlistId", h.playlist.AddVideo)
			playlists.PATCH("/remove/:videoId/:playlistId", h.playlist.RemoveVideo)
			playlists.GET("/user/:userId", h.playlist.ListByUser)
		}

		tweets := api.Group("/tweets", requireAuth)
		{
			tweets.POST("", h.tweet.Create)
			tweets.GET("/user/:userId", h.tweet.ListByUser)
			tweets.PATCH("/:tweetId", h.tweet.Update)
			tweets.DELETE("/:tweetId", h.tweet.Delete)
		}

		dashboard := api.Group("/dashboard", requireAuth)
		{
			dashboard.GET("/stats/:channelId", h.dashboard.Stats)
			dashboard.GET("/videos/:channelId", h.dashboard.Videos)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// Shutdown drains in-flight requests before closing connections.
func (a *App) Shutdown() error {
	logger := a.infra.Logger()
	logger.Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	serverErr := a.server.Shutdown(ctx)
	infraErr := a.infra.Shutdown(ctx)

	if err := errors.Join(serverErr, infraErr); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("Application exited successfully")
	return nil
}
