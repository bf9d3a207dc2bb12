package usecase

import (
	"context"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/validator"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

// UpsertUser creates or refreshes a user keyed by phone number. Name and
// email are merged: absent fields never clear values already stored.
func (s *ArchiveService) UpsertUser(ctx context.Context, payload model.UpsertUserPayload) (int64, error) {
	log := logger.FromContext(ctx)

	if err := validator.Validate(payload); err != nil {
		log.Warn("User validation failed",
			zap.String("phone_number", payload.PhoneNumber),
			zap.Error(err),
		)
		return 0, apperrors.NewValidation(err, "user validation failed")
	}

	user := model.User{
		PhoneNumber: payload.PhoneNumber,
		Name:        payload.Name,
		Email:       payload.Email,
	}

	id, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		log.Error("Failed to upsert user",
			zap.String("phone_number", payload.PhoneNumber),
			zap.Error(err),
		)
		return 0, err // Already wrapped by the repository
	}

	log.Info("User stored",
		zap.Int64("user_id", id),
		zap.String("phone_number", payload.PhoneNumber),
	)
	return id, nil
}

// GetUserByPhone fetches a single user record by their phone number.
func (s *ArchiveService) GetUserByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	return s.userRepo.FindByPhone(ctx, phoneNumber)
}

// ListUsers returns all users, most recently created first.
func (s *ArchiveService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}
