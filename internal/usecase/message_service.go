package usecase

import (
	"context"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/validator"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

// CreateMessage validates and stores a directly posted message. The message
// type defaults to "received" when the payload omits it; any caller-supplied
// value is stored as-is (the tag is deliberately not a closed set).
func (s *ArchiveService) CreateMessage(ctx context.Context, payload model.CreateMessagePayload) (int64, error) {
	log := logger.FromContext(ctx)

	if err := validator.Validate(payload); err != nil {
		log.Warn("Message validation failed",
			zap.String("phone_number", payload.PhoneNumber),
			zap.Error(err),
		)
		return 0, apperrors.NewValidation(err, "message validation failed")
	}

	messageType := payload.MessageType
	if messageType == "" {
		messageType = model.MessageTypeReceived
	}

	message := model.Message{
		PhoneNumber: payload.PhoneNumber,
		MessageText: payload.MessageText,
		MessageType: messageType,
		Status:      model.MessageStatusPending,
	}

	id, err := s.messageRepo.Insert(ctx, message)
	if err != nil {
		log.Error("Failed to store message",
			zap.String("phone_number", payload.PhoneNumber),
			zap.Error(err),
		)
		return 0, err // Already wrapped by the repository
	}

	log.Info("Message stored",
		zap.Int64("message_id", id),
		zap.String("phone_number", payload.PhoneNumber),
		zap.String("message_type", messageType),
	)
	return id, nil
}

// GetMessage fetches a single message by id.
func (s *ArchiveService) GetMessage(ctx context.Context, id int64) (*model.Message, error) {
	return s.messageRepo.FindByID(ctx, id)
}

// ListMessages returns messages newest-first, optionally filtered by phone
// number. The limit is clamped; zero or negative means "use the default".
func (s *ArchiveService) ListMessages(ctx context.Context, phoneNumber string, limit int) ([]model.Message, error) {
	limit = s.clampLimit(limit)
	return s.messageRepo.Find(ctx, model.MessageFilter{PhoneNumber: phoneNumber}, limit)
}

// UpdateMessageStatus sets a message's lifecycle status. An empty status is
// a validation error; an id that matches no row maps to not-found.
func (s *ArchiveService) UpdateMessageStatus(ctx context.Context, id int64, payload model.UpdateMessageStatusPayload) error {
	log := logger.FromContext(ctx)

	if err := validator.Validate(payload); err != nil {
		log.Warn("Status update validation failed",
			zap.Int64("message_id", id),
			zap.Error(err),
		)
		return apperrors.NewValidation(err, "status update validation failed")
	}

	changed, err := s.messageRepo.UpdateStatus(ctx, id, payload.Status)
	if err != nil {
		log.Error("Failed to update message status",
			zap.Int64("message_id", id),
			zap.Error(err),
		)
		return err // Already wrapped
	}
	if !changed {
		return apperrors.ErrNotFound
	}

	log.Info("Message status updated",
		zap.Int64("message_id", id),
		zap.String("status", payload.Status),
	)
	return nil
}
