package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/ai"
	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/database/minio"
	"github.com/Ibtida01/Shobarkhamar/internal/database/postgres"
	"github.com/Ibtida01/Shobarkhamar/internal/database/redis"
	"github.com/Ibtida01/Shobarkhamar/internal/event"
	"github.com/Ibtida01/Shobarkhamar/internal/handlers"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/internal/storage"
)

func setupLogging(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	writer := io.MultiWriter(os.Stdout, file)
	slog.SetDefault(slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})))

	return file, nil
}

func main() {
	cfg := config.New()

	logFile, err := setupLogging(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := redis.NewClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	var store storage.Storage
	switch cfg.UploadCfg.Backend {
	case "minio":
		minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		store = storage.NewMinioStorage(minioClient, cfg.MinioCfg.ResourceURL)
	default:
		localStore, err := storage.NewLocalStorage(cfg.UploadCfg.Dir)
		if err != nil {
			log.Fatalf("Failed to set up local storage: %v", err)
		}
		store = localStore
	}

	// RabbitMQ is optional; without it notifications stay in-app only.
	var publisher event.Publisher = event.NoopPublisher{}
	if rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg); err != nil {
		slog.Warn("RabbitMQ unavailable, push notifications disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewNotificationPublisher(rabbitConn)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.JWTCfg.RefreshExpiry)
	farmRepo := repository.NewFarmRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	diagnosisRepo := repository.NewDiagnosisRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtService := services.NewJWTService(cfg.JWTCfg)
	userService := services.NewUserService(userRepo, sessionRepo, jwtService)
	farmService := services.NewFarmService(farmRepo)
	diseaseService := services.NewDiseaseService(diseaseRepo)
	treatmentService := services.NewTreatmentService(treatmentRepo, diseaseRepo)
	notificationService := services.NewNotificationService(notificationRepo, publisher)
	classifier := ai.NewHTTPClassifier(cfg.AICfg)
	diagnosisService := services.NewDiagnosisService(
		diagnosisRepo, farmRepo, diseaseRepo, store, classifier, notificationService, cfg.UploadCfg)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	middleware := handlers.NewMiddleware(jwtService)

	router := gin.Default()
	router.Use(handlers.CORS(cfg.CORSOrigins))
	router.MaxMultipartMemory = cfg.UploadCfg.MaxSize

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to " + cfg.AppName})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "app": cfg.AppName})
	})

	if local, ok := store.(*storage.LocalStorage); ok {
		router.Static("/uploads", local.Dir())
	}

	api := router.Group("/api/v1")
	handlers.NewAuthHandler(userService).RegisterRoutes(api)
	handlers.NewUserHandler(userService).RegisterRoutes(api, middleware)
	handlers.NewFarmHandler(farmService).RegisterRoutes(api, middleware)
	handlers.NewDiseaseHandler(diseaseService).RegisterRoutes(api, middleware)
	handlers.NewTreatmentHandler(treatmentService).RegisterRoutes(api, middleware)
	handlers.NewDiagnosisHandler(diagnosisService).RegisterRoutes(api, middleware)
	handlers.NewNotificationHandler(notificationService).RegisterRoutes(api, middleware)

	slog.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
