package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"bloghub/database"
	"bloghub/internal/config"
	"bloghub/internal/http-api/handler"
	"bloghub/internal/http-api/middleware"
	"bloghub/internal/http-api/repository"
	"bloghub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional; without it comment listing just always hits Postgres
	var commentCache *repository.CommentCache
	if cfg.RedisAddr != "" {
		commentCache, err = repository.NewCommentCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, comment caching disabled", "error", err)
			commentCache = nil
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	postService := service.NewPostService(postRepo)
	photoService := service.NewPhotoService(photoRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, notificationRepo, commentCache, logger)
	notificationService := service.NewNotificationService(notificationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds()))
	postHandler := handler.NewPostHandler(postService)
	photoHandler := handler.NewPhotoHandler(photoService)
	commentHandler := handler.NewCommentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Setup Gin
	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	postHandler.RegisterPublicRoutes(api)
	photoHandler.RegisterPublicRoutes(api)
	commentHandler.RegisterPublicRoutes(api)

	// Authenticated routes
	protected := api.Group("", middleware.AuthMiddleware(authService))
	postHandler.RegisterProtectedRoutes(protected)
	photoHandler.RegisterProtectedRoutes(protected)
	commentHandler.RegisterProtectedRoutes(protected)
	notificationHandler.RegisterProtectedRoutes(protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
