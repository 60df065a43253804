package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/config"
	"travelblog-backend/internal/domains/subscriber/repository"
	"travelblog-backend/internal/infrastructure/email"
)

// NotifyHandler processes newsletter tasks on the worker.
type NotifyHandler struct {
	repo      repository.SubscriberRepository
	email     email.EmailService
	jobs      config.JobsConfig
	publicURL string
}

func NewNotifyHandler(
	repo repository.SubscriberRepository,
	emailService email.EmailService,
	jobs config.JobsConfig,
	publicURL string,
) *NotifyHandler {
	return &NotifyHandler{
		repo:      repo,
		email:     emailService,
		jobs:      jobs,
		publicURL: publicURL,
	}
}

// HandleNotifyUpdatePublished sends the newsletter in fixed-size batches
// with a pause between batches. A batch failure is logged and the run
// continues; the task only fails (and retries) when every batch failed.
func (h *NotifyHandler) HandleNotifyUpdatePublished(ctx context.Context, t *asynq.Task) error {
	var payload NotifyUpdatePublishedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid notify payload: %v: %w", err, asynq.SkipRetry)
	}

	subscribers, err := h.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		log.Info().Str("update_id", payload.UpdateID).Msg("No active subscribers, nothing to send")
		return nil
	}

	updateURL := fmt.Sprintf("%s/#update-%s", h.publicURL, payload.UpdateID)

	batchSize := h.jobs.NotifyBatchSize
	if batchSize <= 0 {
		batchSize = 40
	}

	var sent, failed int
	for start := 0; start < len(subscribers); start += batchSize {
		end := start + batchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		recipients := make([]string, 0, end-start)
		for _, s := range subscribers[start:end] {
			recipients = append(recipients, s.Email)
		}

		if err := h.email.SendUpdatePublished(recipients, payload.Title, updateURL); err != nil {
			failed += len(recipients)
			log.Error().Err(err).
				Int("batch_start", start).
				Int("batch_size", len(recipients)).
				Msg("Newsletter batch failed")
		} else {
			sent += len(recipients)
		}

		if end < len(subscribers) {
			select {
			case <-time.After(h.jobs.NotifyBatchPause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	log.Info().
		Str("update_id", payload.UpdateID).
		Int("sent", sent).
		Int("failed", failed).
		Msg("Newsletter run finished")

	if sent == 0 && failed > 0 {
		return fmt.Errorf("all %d newsletter batches failed", (failed+batchSize-1)/batchSize)
	}
	return nil
}

// HandleSendTestEmail sends the admin test email.
func (h *NotifyHandler) HandleSendTestEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendTestEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid test email payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.email.SendTestEmail(payload.Recipient); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}

	log.Info().Str("recipient", payload.Recipient).Msg("Test email sent")
	return nil
}
