package storage

import (
	"context"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

// MessageRepoAdapter adapts the SQLiteRepo to the MessageRepo interface
type MessageRepoAdapter struct {
	sqlite *SQLiteRepo
}

// NewMessageRepoAdapter creates a new message repository adapter
func NewMessageRepoAdapter(sqlite *SQLiteRepo) MessageRepo {
	return &MessageRepoAdapter{sqlite: sqlite}
}

// Insert stores a message and returns its assigned id
func (a *MessageRepoAdapter) Insert(ctx context.Context, message model.Message) (int64, error) {
	return a.sqlite.InsertMessage(ctx, message)
}

// FindByID finds a message by its surrogate id
func (a *MessageRepoAdapter) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	return a.sqlite.FindMessageByID(ctx, id)
}

// Find lists messages matching the filter, newest first
func (a *MessageRepoAdapter) Find(ctx context.Context, filter model.MessageFilter, limit int) ([]model.Message, error) {
	return a.sqlite.FindMessages(ctx, filter, limit)
}

// UpdateStatus updates a message's status
func (a *MessageRepoAdapter) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	return a.sqlite.UpdateMessageStatus(ctx, id, status)
}

func (a *MessageRepoAdapter) Close(ctx context.Context) error {
	return a.sqlite.Close(ctx)
}

// UserRepoAdapter adapts the SQLiteRepo to the UserRepo interface
type UserRepoAdapter struct {
	sqlite *SQLiteRepo
}

// NewUserRepoAdapter creates a new user repository adapter
func NewUserRepoAdapter(sqlite *SQLiteRepo) UserRepo {
	return &UserRepoAdapter{sqlite: sqlite}
}

// Upsert inserts or updates a user keyed by phone number
func (a *UserRepoAdapter) Upsert(ctx context.Context, user model.User) (int64, error) {
	return a.sqlite.UpsertUser(ctx, user)
}

// FindByPhone finds a user by phone number
func (a *UserRepoAdapter) FindByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	return a.sqlite.FindUserByPhone(ctx, phoneNumber)
}

// FindAll lists all users, newest first
func (a *UserRepoAdapter) FindAll(ctx context.Context) ([]model.User, error) {
	return a.sqlite.FindUsers(ctx)
}

func (a *UserRepoAdapter) Close(ctx context.Context) error {
	return a.sqlite.Close(ctx)
}
