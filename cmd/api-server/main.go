package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"photostack/database"
	"photostack/internal/cache"
	"photostack/internal/cognitive"
	"photostack/internal/config"
	"photostack/internal/http-api/handler"
	"photostack/internal/http-api/middleware"
	"photostack/internal/http-api/repository"
	"photostack/internal/http-api/service"
	"photostack/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	blobs, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		logger.Error("blob storage connection failed", "error", err)
		os.Exit(1)
	}

	gemini, err := cognitive.NewGeminiService(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		logger.Error("gemini client failed", "error", err)
		os.Exit(1)
	}
	defer gemini.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caching disabled", "error", err)
			redisClient = nil
		}
	}
	trendingCache := cache.NewTrendingCache(redisClient, cfg.CacheTTL)

	// repositories
	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewGormPhotoRepo(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// services
	userService := service.NewUserService(userRepo, photoRepo, commentRepo, ratingRepo)
	photoService := service.NewPhotoService(photoRepo, userService, userRepo, blobs, gemini)
	commentService := service.NewCommentService(commentRepo, photoRepo, userService, userRepo, gemini)
	ratingService := service.NewRatingService(ratingRepo, photoRepo, userService, userRepo)

	// handlers
	photoHandler := handler.NewPhotoHandler(photoService, trendingCache, cfg.UploadMaxSize)
	commentHandler := handler.NewCommentHandler(commentService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	userHandler := handler.NewUserHandler(userService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute).Middleware())
	r.MaxMultipartMemory = cfg.UploadMaxSize

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "photostack api",
			"version": "1.0",
			"resources": []string{
				"/api/photos", "/api/comments", "/api/users",
			},
		})
	})
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	optional := middleware.OptionalAuth(cfg.JWTSecret)
	photoHandler.RegisterRoutes(api, auth, optional)
	commentHandler.RegisterRoutes(api, auth, optional)
	ratingHandler.RegisterRoutes(api, auth)
	userHandler.RegisterRoutes(api, auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
