package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/locks"
	"gorent/internal/middleware"
	"gorent/internal/repositories/mongodb"
	"gorent/internal/services"
	"gorent/pkg/cache"
	"gorent/pkg/database"
	"gorent/pkg/logger"
	"gorent/pkg/storage"
	"gorent/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB is required; migrations create the unique booking index that
	// backstops the in-process lock table.
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis is optional; without it the service runs on the in-process lock
	// table and the unique index alone.
	var cacheService services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = services.NewCacheService(redisCache, appLogger)
		}
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	carRepo := mongodb.NewCarRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	newsletterRepo := mongodb.NewNewsletterRepository(db.Database)

	// Object storage: S3 in production, local disk otherwise
	var uploader services.Uploader
	if cfg.Storage.Provider == "aws" {
		s3Storage, err := storage.NewS3Storage(context.Background(), &storage.Config{
			Region:          cfg.Storage.AWS.Region,
			Bucket:          cfg.Storage.AWS.Bucket,
			AccessKeyID:     cfg.Storage.AWS.AccessKeyID,
			SecretAccessKey: cfg.Storage.AWS.SecretAccessKey,
			CDNDomain:       cfg.Storage.AWS.CDNDomain,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize S3 storage")
		}
		uploader = s3Storage
	}

	// Services
	lockTable := locks.NewTable(cfg.Security.BookingLockTTL)
	availabilityService := services.NewAvailabilityService(carRepo, bookingRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, carRepo, availabilityService, lockTable, cacheService, cfg.Security.BookingLockTTL, appLogger)
	carService := services.NewCarService(carRepo, bookingRepo, appLogger)
	storageService := services.NewStorageService(uploader, cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL, appLogger)
	newsletterService := services.NewNewsletterService(newsletterRepo, appLogger)
	userService := services.NewUserService(userRepo, appLogger)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, availabilityService)
	carHandler := handlers.NewCarHandler(carService)
	ownerHandler := handlers.NewOwnerHandler(carService, storageService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	userHandler := handlers.NewUserHandler(userService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	api := router.Group("/api")
	{
		routes.SetupBookingRoutes(api, bookingHandler, cfg.Security.JWTSecret)
		routes.SetupCarRoutes(api, carHandler, ownerHandler, cfg.Security.JWTSecret)
		routes.SetupUserRoutes(api, userHandler, newsletterHandler, cfg.Security.JWTSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	// Local uploads are served directly when S3 is not configured
	if cfg.Storage.Provider != "aws" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
