package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/hotelbooking/internal/config"
	"github.com/joshua-takyi/hotelbooking/internal/connect"
	"github.com/joshua-takyi/hotelbooking/internal/container"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/routes"
	"github.com/joshua-takyi/hotelbooking/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting hotel booking API", "environment", cfg.Environment, "storage", cfg.StorageDriver)

	ctx := context.Background()

	var (
		repo        container.Repository
		mongoClient *mongo.Client
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data will not survive a restart")
		repo = models.NewMemoryRepo()
	default:
		mongoClient, err = connect.MongoDBConnect(ctx, cfg.MongoDBConnectionURI())
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)

		mongoRepo := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			logger.Error("Failed to create MongoDB indexes", "error", err)
			os.Exit(1)
		}
		repo = mongoRepo
	}

	var (
		cache       services.HotelCache = services.NoopHotelCache{}
		redisClient *redis.Client
	)
	if cfg.CacheEnabled() {
		redisClient, err = connect.RedisConnect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// The cache is optional; run without it rather than refuse to start.
			logger.Warn("Redis unavailable, hotel cache disabled", "error", err)
		} else {
			logger.Info("Connected to Redis successfully", "addr", cfg.RedisAddr)
			cache = services.NewRedisHotelCache(redisClient, cfg.CacheTTL, logger)
		}
	}

	appContainer := container.NewContainer(logger, repo, cache, cfg.AllowedOrigins)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.RedisDisconnect(redisClient); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
