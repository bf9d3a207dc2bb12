package storage

import (
	"context"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

// MessageRepo defines message storage operations
type MessageRepo interface {
	Insert(ctx context.Context, message model.Message) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	Find(ctx context.Context, filter model.MessageFilter, limit int) ([]model.Message, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
	Close(ctx context.Context) error
}

// UserRepo defines user storage operations
type UserRepo interface {
	Upsert(ctx context.Context, user model.User) (int64, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Close(ctx context.Context) error
}

// Pinger reports whether the underlying store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
