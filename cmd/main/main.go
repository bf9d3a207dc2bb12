package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/config"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/httpapi"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/observer"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/storage"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/usecase"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/utils"
)

func main() {
	// Set timezone to UTC
	time.Local = time.UTC

	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	metricsEnabled := cfg.Metrics.Enabled
	observer.InitMetrics(metricsEnabled)

	logger.Log.Info("Starting Daisi WA Archive Service",
		zap.String("environment", cfg.Environment),
		zap.String("sqlite_path", cfg.Database.SQLitePath),
		zap.Int("port", cfg.Server.Port),
	)

	// Initialize repository
	sqliteRepo, err := initSQLiteRepo(cfg.Database.SQLitePath, cfg.Database.AutoMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize SQLite repository", zap.Error(err))
	}

	// Create repository adapters for the service
	messageRepo := storage.NewMessageRepoAdapter(sqliteRepo)
	userRepo := storage.NewUserRepoAdapter(sqliteRepo)

	// Create service
	service := usecase.NewArchiveService(messageRepo, userRepo, usecase.QueryLimits{
		Default: cfg.Query.DefaultLimit,
		Max:     cfg.Query.MaxLimit,
	})

	// Create HTTP server
	server := httpapi.NewServer(httpapi.Options{
		Port:           cfg.Server.Port,
		MetricsEnabled: metricsEnabled,
	}, service, sqliteRepo)

	if metricsEnabled {
		logger.Log.Info("Metrics endpoint enabled", zap.String("path", "/metrics"), zap.Int("port", cfg.Server.Port))
	} else {
		logger.Log.Info("Metrics endpoint disabled for environment", zap.String("environment", cfg.Environment))
	}

	// Start the server; a listener failure triggers shutdown like a signal
	_, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()
	sigChan := make(chan os.Signal, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("HTTP server failed, initiating shutdown...", zap.Error(err))
			mainCancel()
			select {
			case sigChan <- syscall.SIGTERM:
			default:
				logger.Log.Warn("Could not send SIGTERM to signal channel immediately")
			}
		}
	}()

	logger.Log.Info("API endpoints available",
		zap.String("health", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("messages", fmt.Sprintf("http://localhost:%d/api/messages", cfg.Server.Port)),
		zap.String("webhook", fmt.Sprintf("http://localhost:%d/webhook/whatsapp", cfg.Server.Port)),
	)

	// Wait for termination signal
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Log.Info("Received termination signal", zap.String("signal", sig.String()))

	mainCancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Log.Info("Starting graceful shutdown", zap.Duration("timeout", 30*time.Second))

	var wg sync.WaitGroup
	wg.Add(2)

	// Shutdown HTTP server first so no new writes reach the store
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping HTTP server")
		start := time.Now()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Error stopping HTTP server", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] HTTP server stopped",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping HTTP server",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Close database connection
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Closing SQLite connection")
		start := time.Now()
		if err := sqliteRepo.Close(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Failed to close SQLite connection", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] SQLite connection closed",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while closing database connection",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Wait with a timeout for all components to shut down
	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Log.Info("[shutdown] All components stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Log.Warn("[shutdown] Graceful shutdown timed out, forcing exit")
	}

	logger.Log.Info("Daisi WA Archive Service shutdown complete")
}

// Initialize SQLite repository
func initSQLiteRepo(path string, autoMigrate bool) (*storage.SQLiteRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	repo, err := storage.NewSQLiteRepo(path, autoMigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite repository: %w", err)
	}

	logger.Log.Info("Initialized SQLite repository")
	return repo, nil
}
