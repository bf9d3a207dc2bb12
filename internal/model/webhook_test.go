package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/utils"
)

func TestWebhookEntryBody(t *testing.T) {
	tests := []struct {
		name     string
		entry    WebhookEntry
		expected string
	}{
		{
			name:     "text entry returns its body",
			entry:    WebhookEntry{From: "+628123456789", Text: &WebhookText{Body: "hello"}, Type: "text"},
			expected: "hello",
		},
		{
			name:     "nil text falls back",
			entry:    WebhookEntry{From: "+628123456789", Type: "image"},
			expected: NonTextMessageFallback,
		},
		{
			name:     "empty body falls back",
			entry:    WebhookEntry{From: "+628123456789", Text: &WebhookText{}, Type: "sticker"},
			expected: NonTextMessageFallback,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.entry.Body())
		})
	}
}

func TestWebhookPayloadDecoding(t *testing.T) {
	raw := []byte(`{
		"messages": [
			{"from": "+628123456789", "text": {"body": "hi"}, "type": "text"},
			{"from": "+628111111111", "type": "image"}
		]
	}`)

	var payload WebhookPayload
	require.NoError(t, utils.UnmarshalJSON(raw, &payload))
	require.Len(t, payload.Messages, 2)
	assert.Equal(t, "hi", payload.Messages[0].Body())
	assert.Nil(t, payload.Messages[1].Text)
}

func TestWebhookPayloadDecoding_MissingMessages(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, utils.UnmarshalJSON([]byte(`{}`), &payload))
	assert.Empty(t, payload.Messages)
}
