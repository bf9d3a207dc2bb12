package model

// NonTextMessageFallback is stored as the message text when a webhook entry
// carries no text body (media, reactions, stickers and the like).
const NonTextMessageFallback = "Non-text message"

// WebhookPayload is the inbound body of POST /webhook/whatsapp. Providers
// deliver a heterogeneous batch; the Messages list may be absent entirely.
type WebhookPayload struct {
	Messages []WebhookEntry `json:"messages"`
}

// WebhookEntry is a single message entry inside a webhook payload.
type WebhookEntry struct {
	From string       `json:"from"`
	Text *WebhookText `json:"text,omitempty"`
	Type string       `json:"type,omitempty"`
}

// WebhookText holds the text body of a webhook entry, when present.
type WebhookText struct {
	Body string `json:"body"`
}

// Body returns the entry's text body, or the non-text fallback when the
// entry has no usable text.
func (e WebhookEntry) Body() string {
	if e.Text == nil || e.Text.Body == "" {
		return NonTextMessageFallback
	}
	return e.Text.Body
}
