package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

// --- Retry Logic Configuration ---
const (
	defaultRetryInitialInterval = 50 * time.Millisecond
	defaultRetryMaxInterval     = 2 * time.Second
	readRetryMaxElapsedTime     = 5 * time.Second  // More aggressive for reads
	commitRetryMaxElapsedTime   = 15 * time.Second // More tolerant for writes
)

// newRetryPolicy creates a new exponential backoff policy with context awareness.
func newRetryPolicy(ctx context.Context, maxElapsedTime time.Duration) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultRetryInitialInterval
	b.MaxInterval = defaultRetryMaxInterval
	b.MaxElapsedTime = maxElapsedTime
	b.Reset() // Important: Reset before first use
	return backoff.WithContext(b, ctx)
}

// retryableOperation wraps a database operation with retry logic.
func retryableOperation(ctx context.Context, policy backoff.BackOffContext, opName string, operation func() error) error {
	notify := func(err error, d time.Duration) {
		logger.FromContext(ctx).Warn("Retrying DB operation",
			zap.String("operation", opName),
			zap.Error(err),
			zap.Duration("after", d),
		)
	}

	err := backoff.RetryNotify(func() error {
		err := operation()
		if err != nil {
			// Check for non-retryable errors first
			if errors.Is(err, gorm.ErrRecordNotFound) ||
				errors.Is(err, gorm.ErrInvalidTransaction) ||
				errors.Is(err, gorm.ErrDuplicatedKey) {
				return backoff.Permanent(err)
			}
			// Check for potentially transient errors
			if isTransientError(err) {
				return err // Retry transient errors
			}
			// Treat other errors as permanent by default
			return backoff.Permanent(err)
		}
		return nil // Success
	}, policy, notify)

	return err
}

// isTransientError checks if the error suggests a temporary issue, e.g. a
// concurrent writer holding the SQLite lock.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	// Context deadline exceeded often indicates a timeout worth retrying
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		// SQLITE_BUSY and SQLITE_LOCKED are the lock-contention codes; both
		// clear once the competing writer finishes.
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return true
		}
		if sqliteErr.Code == sqlite3.ErrIoErr {
			return true
		}
		return false
	}

	// Fallback to string matching for errors the driver did not type
	errStr := strings.ToLower(err.Error())
	transientIndicators := []string{
		"database is locked",
		"database table is locked",
		"disk i/o error",
		"i/o timeout",
	}
	for _, indicator := range transientIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// SQLiteRepo implements the message and user repositories over a single
// file-backed SQLite database. The handle is process-wide: opened once at
// startup, shared by every request, closed at shutdown.
type SQLiteRepo struct {
	db *gorm.DB
}

// NewSQLiteRepo opens (or creates) the database file and initializes the
// schema. Schema creation is idempotent; a failure here is fatal to the
// caller since the process must not serve with a partial schema.
func NewSQLiteRepo(path string, autoMigrate bool) (*SQLiteRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=0", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	repo := &SQLiteRepo{db: db}

	if autoMigrate {
		logger.Log.Info("Running auto-migration", zap.String("path", path))
		if err := db.AutoMigrate(&model.Message{}, &model.User{}); err != nil {
			repo.closeQuietly()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	} else {
		logger.Log.Info("Auto-migration disabled")
	}

	// Verify crucial tables regardless of the migration flag; serving with a
	// partial schema is worse than failing startup.
	for _, table := range []string{"messages", "users"} {
		var exists bool
		checkSQL := `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
		if err := db.Raw(checkSQL, table).Scan(&exists).Error; err != nil {
			repo.closeQuietly()
			return nil, fmt.Errorf("failed to check for '%s' table existence: %w", table, err)
		}
		if !exists {
			repo.closeQuietly()
			return nil, fmt.Errorf("'%s' table does not exist after migration", table)
		}
		logger.Log.Debug("Table verified post-migration", zap.String("table", table))
	}

	return repo, nil
}

// Ping verifies the database connection is usable.
func (r *SQLiteRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: failed to get underlying SQL DB: %w", apperrors.ErrDatabase, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping failed: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to get underlying SQL DB for closing", zap.Error(err))
		return nil
	}

	if closeErr := sqlDB.Close(); closeErr != nil {
		logger.FromContext(ctx).Error("Failed to close database connection", zap.Error(closeErr))
		return fmt.Errorf("failed to close SQL DB: %w", closeErr)
	}

	logger.FromContext(ctx).Info("Database connection closed successfully")
	return nil
}

func (r *SQLiteRepo) closeQuietly() {
	if sqlDB, err := r.db.DB(); err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// checkConstraintViolation inspects database errors and maps them to standard apperrors.
func checkConstraintViolation(err error) error {
	if err == nil {
		return nil
	}

	// Check for specific GORM errors first
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", apperrors.ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", apperrors.ErrDuplicate, err)
	}

	// Check for underlying sqlite3 errors
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: unique constraint: %w", apperrors.ErrDuplicate, err)
		case sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: null value in NOT NULL column: %w", apperrors.ErrBadRequest, err)
		case sqlite3.ErrConstraintCheck:
			return fmt.Errorf("%w: check constraint: %w", apperrors.ErrBadRequest, err)
		}
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: database locked (%d): %w", apperrors.ErrDatabase, int(sqliteErr.Code), err)
		}
		return fmt.Errorf("%w: unhandled sqlite code %d: %w", apperrors.ErrDatabase, int(sqliteErr.Code), err)
	}

	// Assume other GORM or generic errors are general database errors
	return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
}
