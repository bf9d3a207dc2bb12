package usecase

import (
	"context"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/observer"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

// WebhookResult summarizes a processed webhook batch.
type WebhookResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// ProcessWebhook ingests a webhook batch sequentially. Each entry becomes a
// "received" message; entries without a sender are skipped and storage
// failures are logged and counted without aborting the batch. An empty batch
// is a successful no-op.
func (s *ArchiveService) ProcessWebhook(ctx context.Context, payload model.WebhookPayload) WebhookResult {
	log := logger.FromContext(ctx)

	var result WebhookResult
	for _, entry := range payload.Messages {
		if entry.From == "" {
			log.Warn("Skipping webhook entry without sender")
			observer.IncWebhookEntry("skipped")
			result.Skipped++
			continue
		}

		message := model.Message{
			PhoneNumber: entry.From,
			MessageText: entry.Body(),
			MessageType: model.MessageTypeReceived,
			Status:      model.MessageStatusPending,
		}

		id, err := s.messageRepo.Insert(ctx, message)
		if err != nil {
			log.Error("Failed to store webhook message",
				zap.String("phone_number", entry.From),
				zap.Error(err),
			)
			observer.IncWebhookEntry("failed")
			result.Failed++
			continue
		}

		log.Info("Webhook message stored",
			zap.Int64("message_id", id),
			zap.String("phone_number", entry.From),
		)
		observer.IncWebhookEntry("processed")
		result.Processed++
	}

	if len(payload.Messages) > 0 {
		log.Info("Webhook batch processed",
			zap.Int("processed", result.Processed),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed),
		)
	}
	return result
}
