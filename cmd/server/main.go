package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakeside-hotel/service-booking/internal/application"
	"github.com/lakeside-hotel/service-booking/internal/config"
	"github.com/lakeside-hotel/service-booking/internal/events"
	"github.com/lakeside-hotel/service-booking/internal/handler"
	"github.com/lakeside-hotel/service-booking/internal/platform/database"
	"github.com/lakeside-hotel/service-booking/internal/platform/logger"
	"github.com/lakeside-hotel/service-booking/internal/platform/metrics"
	"github.com/lakeside-hotel/service-booking/internal/platform/middleware"
	"github.com/lakeside-hotel/service-booking/internal/repository"
)

const serviceName = "service-booking"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBConfig.Driver),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize Kafka producer
	var publisher application.EventPublisher = events.NoopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		producer := events.NewProducer(cfg.KafkaConfig.Brokers, serviceName, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		log.Warn("no kafka brokers configured, domain events are discarded")
	}

	// Initialize room type cache
	var roomTypeCache application.RoomTypeCache = application.NoopRoomTypeCache{}
	var healthChecks []handler.DependencyCheck
	if cfg.RedisConfig.Enabled() {
		redisClient := repository.NewRedisClient(cfg.RedisConfig.Addr, cfg.RedisConfig.Password, cfg.RedisConfig.DB)
		defer func() { _ = redisClient.Close() }()
		cache := repository.NewRedisRoomTypeCache(redisClient, cfg.RedisConfig.RoomTypesTTL)
		roomTypeCache = cache
		healthChecks = append(healthChecks, handler.DependencyCheck{Name: "redis", Ping: cache.Ping})
	}

	m := metrics.New("hotel")

	// Initialize repositories
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, roomRepo, publisher, m, log)
	roomService := application.NewRoomService(roomRepo, roomTypeCache, publisher, log)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxPhotoBytes

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimitConfig.RPS, cfg.RateLimitConfig.Burst)))
	router.Use(m.Middleware())

	handler.NewHealthHandler(db, serviceName, healthChecks...).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	handler.NewRoomHandler(roomService, cfg.MaxPhotoBytes).RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
