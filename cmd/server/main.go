package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/config"
	"github.com/crave-social/crave/internal/database"
	postgresrepo "github.com/crave-social/crave/internal/repository/postgres"
	"github.com/crave-social/crave/internal/service"
	"github.com/crave-social/crave/internal/storage"
	"github.com/crave-social/crave/internal/transport/http/handlers"
	"github.com/crave-social/crave/internal/transport/http/middleware"
	"github.com/crave-social/crave/pkg/logger"
)

func main() {
	// best-effort: run with real env if no .env exists
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}
	log.Info("connected to database")

	// Blob storage
	blobStore, err := storage.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL, cfg.MediaSigningKey, cfg.SignedURLTTL)
	if err != nil {
		log.Fatal("blob store init failed", zap.Error(err))
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)
	videoRepo := postgresrepo.NewVideoRepo(pool)

	// Services
	identityService := service.NewIdentityService(userRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	followService := service.NewFollowService(followRepo, identityService)
	videoService := service.NewVideoService(videoRepo, blobStore, identityService)
	feedService := service.NewFeedService(followService, videoRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, identityService, log)
	userHandler := handlers.NewUserHandler(followService, videoService, log)
	videoHandler := handlers.NewVideoHandler(videoService, log)
	feedHandler := handlers.NewFeedHandler(feedService, log)
	mediaHandler := handlers.NewMediaHandler(blobStore, log)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /media/{name}", mediaHandler.Serve)

	// Protected - Auth
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	// Protected - Videos
	mux.Handle("POST /api/v1/videos", auth(http.HandlerFunc(videoHandler.Upload)))
	mux.Handle("GET /api/v1/videos", auth(http.HandlerFunc(videoHandler.ListPublic)))
	mux.Handle("GET /api/v1/videos/{id}", auth(http.HandlerFunc(videoHandler.Get)))
	mux.Handle("GET /api/v1/videos/{id}/stream", auth(http.HandlerFunc(videoHandler.Stream)))

	// Protected - Users & follow graph
	mux.Handle("GET /api/v1/users/{id}", auth(http.HandlerFunc(userHandler.GetProfile)))
	mux.Handle("GET /api/v1/users/{id}/videos", auth(http.HandlerFunc(userHandler.ListVideos)))
	mux.Handle("POST /api/v1/users/{id}/follow", auth(http.HandlerFunc(userHandler.Follow)))
	mux.Handle("DELETE /api/v1/users/{id}/follow", auth(http.HandlerFunc(userHandler.Unfollow)))
	mux.Handle("GET /api/v1/users/{id}/followers", auth(http.HandlerFunc(userHandler.ListFollowers)))
	mux.Handle("GET /api/v1/users/{id}/following", auth(http.HandlerFunc(userHandler.ListFollowing)))

	// Protected - Feed
	mux.Handle("GET /api/v1/feed", auth(http.HandlerFunc(feedHandler.GetFeed)))

	handler := middleware.CORS(middleware.Logging(log)(mux))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown failed", zap.Error(err))
	}
}
