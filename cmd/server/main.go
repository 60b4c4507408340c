package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soulcare/internal/cache"
	"soulcare/internal/config"
	"soulcare/internal/logger"
	"soulcare/internal/repository"
	"soulcare/internal/service"
	"soulcare/internal/transport/rest"
	"soulcare/internal/transport/ws"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer zlog.Sync()

	zlog.Infow("starting soulcare api", "env", cfg.Env, "port", cfg.HTTPPort)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zlog.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		zlog.Fatalw("failed to ping MongoDB", "error", err)
	}
	zlog.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zlog.Fatalw("failed to ping Redis", "error", err)
	}
	zlog.Info("connected to Redis")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	otpRepo := repository.NewOtpRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	chatRepo := repository.NewChatRepo(db)

	// Initialize caches
	sessionCache := cache.NewAssessmentSessionCache(rdb)
	cooldownCache := cache.NewCooldownCache(rdb)

	// Initialize WebSocket hub
	wsHub := ws.NewHub(zlog)

	// Initialize services
	userSvc := service.NewUserService(userRepo, zlog)
	authSvc := service.NewAuthService(userRepo, otpRepo, userSvc, cooldownCache, cfg, zlog)
	defer authSvc.Close()
	assessmentSvc := service.NewAssessmentService(assessmentRepo, sessionCache, zlog)
	chatSvc := service.NewChatService(chatRepo, zlog)
	chatSvc.SetBroadcaster(wsHub)

	wsHandler := ws.NewHandler(wsHub, authSvc, chatSvc, zlog)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		UserService:       userSvc,
		AssessmentService: assessmentSvc,
		ChatService:       chatSvc,
		WSHandler:         wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		zlog.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("listen and serve failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatalw("server forced to shutdown", "error", err)
	}

	zlog.Info("server exited")
}
