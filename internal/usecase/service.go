package usecase

import (
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/storage"
)

// QueryLimits bounds the ?limit parameter on listing endpoints.
type QueryLimits struct {
	Default int
	Max     int
}

// ArchiveService implements message and user persistence operations plus
// webhook ingestion. Validation happens here, before any storage call;
// storage errors pass through wrapped so the HTTP layer can map them.
type ArchiveService struct {
	messageRepo storage.MessageRepo
	userRepo    storage.UserRepo
	limits      QueryLimits
}

// NewArchiveService creates a new archive service
func NewArchiveService(messageRepo storage.MessageRepo, userRepo storage.UserRepo, limits QueryLimits) *ArchiveService {
	if limits.Default <= 0 {
		limits.Default = 50
	}
	if limits.Max <= 0 {
		limits.Max = 1000
	}
	return &ArchiveService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		limits:      limits,
	}
}

// clampLimit folds a caller-supplied limit into [1, Max], substituting the
// default for non-positive values.
func (s *ArchiveService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.limits.Default
	}
	if limit > s.limits.Max {
		return s.limits.Max
	}
	return limit
}
