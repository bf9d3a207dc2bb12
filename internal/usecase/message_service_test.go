package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	apperrors "gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	storagemock "gitlab.com/timkado/api/daisi-wa-archive-service/internal/storage/mock"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

func init() {
	// Fallback logger for tests; individual tests attach a zaptest logger
	// to the context when they want log output tied to t.
	logger.Log = zap.NewNop()
}

func newTestService() (*ArchiveService, *storagemock.MessageRepoMock, *storagemock.UserRepoMock) {
	messageRepo := new(storagemock.MessageRepoMock)
	userRepo := new(storagemock.UserRepoMock)
	service := NewArchiveService(messageRepo, userRepo, QueryLimits{Default: 50, Max: 1000})
	return service, messageRepo, userRepo
}

func TestCreateMessage_Success(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.CreateMessagePayload{
		PhoneNumber: gofakeit.Phone(),
		MessageText: gofakeit.Sentence(5),
	}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(11), nil)

	// Run the logging path against a real test logger
	ctx := logger.WithLogger(context.Background(), zaptest.NewLogger(t))

	id, err := service.CreateMessage(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	// The stored message carries the defaults for type and status
	calls := messageRepo.Calls
	require.Len(t, calls, 1)
	stored := calls[0].Arguments.Get(1).(model.Message)
	assert.Equal(t, payload.PhoneNumber, stored.PhoneNumber)
	assert.Equal(t, payload.MessageText, stored.MessageText)
	assert.Equal(t, model.MessageTypeReceived, stored.MessageType)
	assert.Equal(t, model.MessageStatusPending, stored.Status)
}

func TestCreateMessage_ExplicitType(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.CreateMessagePayload{
		PhoneNumber: gofakeit.Phone(),
		MessageText: gofakeit.Sentence(5),
		MessageType: model.MessageTypeSent,
	}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(12), nil)

	_, err := service.CreateMessage(context.Background(), payload)
	require.NoError(t, err)

	stored := messageRepo.Calls[0].Arguments.Get(1).(model.Message)
	assert.Equal(t, model.MessageTypeSent, stored.MessageType)
}

func TestCreateMessage_ValidationError(t *testing.T) {
	service, messageRepo, _ := newTestService()

	testCases := []struct {
		name    string
		payload model.CreateMessagePayload
	}{
		{
			name:    "Missing phone number",
			payload: model.CreateMessagePayload{MessageText: "hi"},
		},
		{
			name:    "Missing message text",
			payload: model.CreateMessagePayload{PhoneNumber: "+628123456789"},
		},
		{
			name:    "Empty payload",
			payload: model.CreateMessagePayload{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := service.CreateMessage(context.Background(), tc.payload)
			assert.Zero(t, id)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	messageRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateMessage_RepoError(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.CreateMessagePayload{
		PhoneNumber: "+628123456789",
		MessageText: "hi",
	}

	dbErr := fmt.Errorf("%w: disk full", apperrors.ErrDatabase)
	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(0), dbErr)

	id, err := service.CreateMessage(context.Background(), payload)
	assert.Zero(t, id)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestGetMessage(t *testing.T) {
	service, messageRepo, _ := newTestService()

	expected := &model.Message{ID: 7, PhoneNumber: "+628123456789", MessageText: "hi"}
	messageRepo.On("FindByID", mock.Anything, int64(7)).Return(expected, nil)

	message, err := service.GetMessage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, expected, message)
}

func TestGetMessage_NotFound(t *testing.T) {
	service, messageRepo, _ := newTestService()

	messageRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, apperrors.ErrNotFound)

	message, err := service.GetMessage(context.Background(), 999)
	assert.Nil(t, message)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListMessages_LimitClamping(t *testing.T) {
	testCases := []struct {
		name          string
		requested     int
		expectedLimit int
	}{
		{name: "Zero uses default", requested: 0, expectedLimit: 50},
		{name: "Negative uses default", requested: -5, expectedLimit: 50},
		{name: "Within range passes through", requested: 200, expectedLimit: 200},
		{name: "Above max clamps to max", requested: 5000, expectedLimit: 1000},
		{name: "Exactly max", requested: 1000, expectedLimit: 1000},
		{name: "Minimum of one", requested: 1, expectedLimit: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, messageRepo, _ := newTestService()
			messageRepo.On("Find", mock.Anything, model.MessageFilter{}, tc.expectedLimit).
				Return([]model.Message{}, nil)

			_, err := service.ListMessages(context.Background(), "", tc.requested)
			require.NoError(t, err)
			messageRepo.AssertExpectations(t)
		})
	}
}

func TestListMessages_PhoneFilter(t *testing.T) {
	service, messageRepo, _ := newTestService()

	expected := []model.Message{{ID: 1, PhoneNumber: "+628123456789"}}
	messageRepo.On("Find", mock.Anything, model.MessageFilter{PhoneNumber: "+628123456789"}, 50).
		Return(expected, nil)

	messages, err := service.ListMessages(context.Background(), "+628123456789", 0)
	require.NoError(t, err)
	assert.Equal(t, expected, messages)
}

func TestUpdateMessageStatus_Success(t *testing.T) {
	service, messageRepo, _ := newTestService()

	messageRepo.On("UpdateStatus", mock.Anything, int64(5), "delivered").Return(true, nil)

	err := service.UpdateMessageStatus(context.Background(), 5, model.UpdateMessageStatusPayload{Status: "delivered"})
	assert.NoError(t, err)
}

func TestUpdateMessageStatus_EmptyStatus(t *testing.T) {
	service, messageRepo, _ := newTestService()

	err := service.UpdateMessageStatus(context.Background(), 5, model.UpdateMessageStatusPayload{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMessageStatus_NotFound(t *testing.T) {
	service, messageRepo, _ := newTestService()

	messageRepo.On("UpdateStatus", mock.Anything, int64(999), "delivered").Return(false, nil)

	err := service.UpdateMessageStatus(context.Background(), 999, model.UpdateMessageStatusPayload{Status: "delivered"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateMessageStatus_RepoError(t *testing.T) {
	service, messageRepo, _ := newTestService()

	messageRepo.On("UpdateStatus", mock.Anything, int64(5), "delivered").
		Return(false, fmt.Errorf("%w: locked", apperrors.ErrDatabase))

	err := service.UpdateMessageStatus(context.Background(), 5, model.UpdateMessageStatusPayload{Status: "delivered"})
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}
