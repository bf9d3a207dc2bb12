package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

// --- MessageRepo Mock ---

// MessageRepoMock mocks the MessageRepo interface
type MessageRepoMock struct {
	mock.Mock
}

// Insert mocks the Insert method
func (m *MessageRepoMock) Insert(ctx context.Context, message model.Message) (int64, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(int64), args.Error(1)
}

// FindByID mocks the FindByID method
func (m *MessageRepoMock) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

// Find mocks the Find method
func (m *MessageRepoMock) Find(ctx context.Context, filter model.MessageFilter, limit int) ([]model.Message, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method
func (m *MessageRepoMock) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// Close mocks the Close method
func (m *MessageRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- UserRepo Mock ---

// UserRepoMock mocks the UserRepo interface
type UserRepoMock struct {
	mock.Mock
}

// Upsert mocks the Upsert method
func (m *UserRepoMock) Upsert(ctx context.Context, user model.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

// FindByPhone mocks the FindByPhone method
func (m *UserRepoMock) FindByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// FindAll mocks the FindAll method
func (m *UserRepoMock) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// Close mocks the Close method
func (m *UserRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Pinger Mock ---

// PingerMock mocks the Pinger interface
type PingerMock struct {
	mock.Mock
}

// Ping mocks the Ping method
func (m *PingerMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
