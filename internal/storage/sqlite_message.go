package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/observer"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/utils"
)

// InsertMessage stores a message and returns its assigned surrogate id.
// Timestamp and Status are populated by the schema defaults; the caller is
// responsible for having validated phone_number and message_text.
func (r *SQLiteRepo) InsertMessage(ctx context.Context, message model.Message) (int64, error) {
	operation := func() error {
		result := r.db.WithContext(ctx).Create(&message)
		if result.Error != nil {
			return checkConstraintViolation(result.Error)
		}
		return nil // Success
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "InsertMessage", operation)
	observer.ObserveDbOperationDuration("insert", "message", time.Since(startTime), commitErr)

	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to insert message after retries",
			zap.String("phone_number", message.PhoneNumber),
			zap.Error(commitErr))
		return 0, commitErr // Already wrapped
	}

	return message.ID, nil
}

// FindMessageByID finds a single message by its surrogate id.
func (r *SQLiteRepo) FindMessageByID(ctx context.Context, id int64) (*model.Message, error) {
	loggerCtx := logger.FromContext(ctx)

	var message model.Message
	operation := func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).First(&message)
		if result.Error != nil {
			return checkConstraintViolation(result.Error)
		}
		return nil
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindMessageByID", operation)
	observer.ObserveDbOperationDuration("find_by_id", "message", time.Since(startTime), findErr)

	if findErr != nil {
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		loggerCtx.Error("Failed to find message by id after retries",
			zap.Int64("message_id", id),
			zap.Error(findErr))
		return nil, findErr // Already wrapped
	}

	return &message, nil
}

// FindMessages lists messages ordered by timestamp descending. The filter's
// phone number, when set, restricts the result; limit truncates it. Callers
// clamp limit to a sane range before reaching the repository.
func (r *SQLiteRepo) FindMessages(ctx context.Context, filter model.MessageFilter, limit int) ([]model.Message, error) {
	loggerCtx := logger.FromContext(ctx)

	var messages []model.Message
	operation := func() error {
		query := r.db.WithContext(ctx).Model(&model.Message{})
		if filter.PhoneNumber != "" {
			query = query.Where("phone_number = ?", filter.PhoneNumber)
		}
		result := query.Order("timestamp DESC").Limit(limit).Find(&messages)
		if result.Error != nil {
			return fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil // Success, even if no records found
	}

	readPolicy := newRetryPolicy(ctx, readRetryMaxElapsedTime)
	startTime := utils.Now()
	findErr := retryableOperation(ctx, readPolicy, "FindMessages", operation)
	observer.ObserveDbOperationDuration("find", "message", time.Since(startTime), findErr)

	if findErr != nil {
		loggerCtx.Error("Failed to find messages after retries",
			zap.String("phone_number", filter.PhoneNumber),
			zap.Int("limit", limit),
			zap.Error(findErr))
		return nil, findErr // Already wrapped
	}
	if messages == nil { // Ensure empty slice is returned, not nil
		return []model.Message{}, nil
	}
	return messages, nil
}

// UpdateMessageStatus sets the status of the message with the given id.
// Returns false when no row matched; the caller maps that to not-found.
func (r *SQLiteRepo) UpdateMessageStatus(ctx context.Context, id int64, status string) (bool, error) {
	var changed bool
	operation := func() error {
		result := r.db.WithContext(ctx).Model(&model.Message{}).
			Where("id = ?", id).
			Update("status", status)
		if result.Error != nil {
			return checkConstraintViolation(result.Error)
		}
		changed = result.RowsAffected > 0
		return nil // Success
	}

	commitPolicy := newRetryPolicy(ctx, commitRetryMaxElapsedTime)
	startTime := utils.Now()
	commitErr := retryableOperation(ctx, commitPolicy, "UpdateMessageStatus", operation)
	observer.ObserveDbOperationDuration("update_status", "message", time.Since(startTime), commitErr)

	if commitErr != nil {
		logger.FromContext(ctx).Error("Failed to update message status after retries",
			zap.Int64("message_id", id),
			zap.String("status", status),
			zap.Error(commitErr))
		return false, commitErr // Already wrapped
	}

	return changed, nil
}
