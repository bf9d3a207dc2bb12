package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

func textEntry(from, body string) model.WebhookEntry {
	return model.WebhookEntry{
		From: from,
		Text: &model.WebhookText{Body: body},
		Type: "text",
	}
}

func TestProcessWebhook_StoresEachEntry(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.WebhookPayload{Messages: []model.WebhookEntry{
		textEntry("+628111111111", "first"),
		textEntry("+628222222222", "second"),
	}}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(1), nil)

	result := service.ProcessWebhook(context.Background(), payload)
	assert.Equal(t, 2, result.Processed)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Failed)

	require.Len(t, messageRepo.Calls, 2)
	first := messageRepo.Calls[0].Arguments.Get(1).(model.Message)
	assert.Equal(t, "+628111111111", first.PhoneNumber)
	assert.Equal(t, "first", first.MessageText)
	assert.Equal(t, model.MessageTypeReceived, first.MessageType)
	assert.Equal(t, model.MessageStatusPending, first.Status)
}

func TestProcessWebhook_NonTextFallback(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.WebhookPayload{Messages: []model.WebhookEntry{
		{From: "+628111111111", Type: "image"},                               // no text at all
		{From: "+628222222222", Text: &model.WebhookText{}, Type: "sticker"}, // empty body
	}}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(1), nil)

	result := service.ProcessWebhook(context.Background(), payload)
	assert.Equal(t, 2, result.Processed)

	for _, call := range messageRepo.Calls {
		stored := call.Arguments.Get(1).(model.Message)
		assert.Equal(t, model.NonTextMessageFallback, stored.MessageText)
	}
}

func TestProcessWebhook_TypeForcedToReceived(t *testing.T) {
	service, messageRepo, _ := newTestService()

	entry := textEntry("+628111111111", "hello")
	entry.Type = "outgoing" // Whatever the provider claims, ingestion records "received"
	payload := model.WebhookPayload{Messages: []model.WebhookEntry{entry}}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(1), nil)

	service.ProcessWebhook(context.Background(), payload)

	stored := messageRepo.Calls[0].Arguments.Get(1).(model.Message)
	assert.Equal(t, model.MessageTypeReceived, stored.MessageType)
}

func TestProcessWebhook_EmptyBatch(t *testing.T) {
	service, messageRepo, _ := newTestService()

	result := service.ProcessWebhook(context.Background(), model.WebhookPayload{})
	assert.Zero(t, result.Processed)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Failed)
	messageRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProcessWebhook_SkipsEntriesWithoutSender(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.WebhookPayload{Messages: []model.WebhookEntry{
		{Text: &model.WebhookText{Body: "orphan"}},
		textEntry("+628111111111", "kept"),
	}}

	messageRepo.On("Insert", mock.Anything, mock.AnythingOfType("model.Message")).Return(int64(1), nil)

	result := service.ProcessWebhook(context.Background(), payload)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, messageRepo.Calls, 1)
}

func TestProcessWebhook_FailuresDoNotAbortBatch(t *testing.T) {
	service, messageRepo, _ := newTestService()

	payload := model.WebhookPayload{Messages: []model.WebhookEntry{
		textEntry("+628111111111", "fails"),
		textEntry("+628222222222", "stored anyway"),
	}}

	dbErr := fmt.Errorf("%w: locked", apperrors.ErrDatabase)
	messageRepo.On("Insert", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
		return m.MessageText == "fails"
	})).Return(int64(0), dbErr)
	messageRepo.On("Insert", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
		return m.MessageText == "stored anyway"
	})).Return(int64(2), nil)

	result := service.ProcessWebhook(context.Background(), payload)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, messageRepo.Calls, 2)
}
