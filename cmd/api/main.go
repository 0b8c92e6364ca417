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
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"inventory-api/internal/client"
	"inventory-api/internal/config"
	"inventory-api/internal/database"
	"inventory-api/internal/dto"
	"inventory-api/internal/job"
	"inventory-api/internal/metrics"
	"inventory-api/internal/repository"
	"inventory-api/internal/router"
)

// Gallery images of soft-deleted products are purged once the product
// has been gone long enough to rule out a restore.
const (
	imageRetention  = 30 * 24 * time.Hour
	cleanupInterval = 24 * time.Hour
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting inventory API",
		zap.Int("port", cfg.Server.Port),
		zap.String("base_path", cfg.Server.BasePath),
	)

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	m := metrics.NewWithLogger(logger)

	dbConfig := database.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	var imageStore client.ImageStore
	if cfg.S3.Bucket != "" {
		store, err := client.NewS3ImageStore(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize image store, image uploads disabled", zap.Error(err))
		} else {
			imageStore = store
			logger.Info("Image store initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, image uploads disabled")
	}

	var collector *metrics.BusinessMetricsCollector
	var statsDone chan struct{}
	var cleanupDone chan struct{}
	onConnect := func(db *gorm.DB) {
		if err := database.AutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
		database.RegisterMetricsCallbacks(db, m)
		statsDone = database.StartDBStatsCollector(db, m)
		collector = metrics.NewBusinessMetricsCollector(db, m, logger)
		collector.Start()

		if imageStore != nil {
			cleanup := job.NewImageCleanupJob(
				repository.NewProductRepository(db),
				imageStore,
				logger,
				imageRetention,
			)
			cleanupDone = cleanup.Start(cleanupInterval)
		}
	}

	db, err := database.New(dbConfig)
	if err != nil {
		// Keep the process alive; the pod should come up even when the
		// database is still starting
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, func(db *gorm.DB) {
			logger.Info("Database connected")
			onConnect(db)
		})
	} else {
		database.SetDB(db)
		logger.Info("Database connected")
		onConnect(db)
	}

	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        m,
		ImageStore:     imageStore,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("Inventory API started", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if collector != nil {
		collector.Stop()
	}
	if statsDone != nil {
		close(statsDone)
	}
	if cleanupDone != nil {
		close(cleanupDone)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if current := database.GetDB(); current != nil {
		if err := database.Close(current); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}

	logger.Info("Server exited gracefully")
}

// initLogger builds the zap logger at the configured level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
