package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/observer"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/utils"
)

// UpsertUser inserts the user or, when a row with the same phone_number
// already exists, updates it in place. Name and email only overwrite the
// stored value when the incoming value is non-null (COALESCE semantics),
// and last_message_at is refreshed on every conflicting upsert. The
// engine's native ON CONFLICT resolution makes concurrent upserts for one
// phone_number safe without application-level locking.
func (r *SQLiteRepo) UpsertUser(ctx context.Context, user model.User) (int64, error) {
	now := utils.Now()

	operation := func() error {
		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "phone_number"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":            gorm.Expr("COALESCE(excluded.name, users.name)"),
				"email":           gorm.Expr("COALESCE(excluded.email, users.email)"),
				"last_message_at": now,
			}),
		}).Create(&user)

		if result.Error != nil {
			return checkConstraintViolation(result.Error)
		}
		return nil // Success
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "UpsertUser", operation)
	observer.ObserveDbOperationDuration("upsert", "user", time.Since(startTime), commitErr)

	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to upsert user after retries",
			zap.String("phone_number", user.PhoneNumber),
			zap.Error(commitErr))
		return 0, commitErr // Already wrapped
	}

	// The conflict-update path does not report the id of the existing row,
	// so resolve it with a read on the unique key.
	var saved model.User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", user.PhoneNumber).First(&saved).Error; err != nil {
		wrapped := checkConstraintViolation(err)
		logger.FromContext(ctx).Error("Failed to read back upserted user",
			zap.String("phone_number", user.PhoneNumber),
			zap.Error(wrapped))
		return 0, wrapped
	}

	return saved.ID, nil
}

// FindUserByPhone finds a user by phone number.
func (r *SQLiteRepo) FindUserByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	loggerCtx := logger.FromContext(ctx)

	var user model.User
	operation := func() error {
		result := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&user)
		if result.Error != nil {
			return checkConstraintViolation(result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindUserByPhone", operation)
	observer.ObserveDbOperationDuration("find_by_phone", "user", time.Since(startTime), findErr)

	if findErr != nil {
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		loggerCtx.Error("Failed to find user by phone after retries",
			zap.String("phone_number", phoneNumber),
			zap.Error(findErr))
		return nil, findErr // Already wrapped
	}

	return &user, nil
}

// FindUsers lists all users ordered by created_at descending.
func (r *SQLiteRepo) FindUsers(ctx context.Context) ([]model.User, error) {
	loggerCtx := logger.FromContext(ctx)

	var users []model.User
	operation := func() error {
		result := r.db.WithContext(ctx).Order("created_at DESC").Find(&users)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil // Success, even if no records found
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindUsers", operation)
	observer.ObserveDbOperationDuration("find_all", "user", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to list users after retries", zap.Error(findErr))
		return nil, findErr // Already wrapped
	}
	if users == nil {
		return []model.User{}, nil
	}
	return users, nil
}
