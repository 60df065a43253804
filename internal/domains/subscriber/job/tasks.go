package job

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names for the subscriber domain.
const (
	TypeNotifyUpdatePublished = "notify:update_published"
	TypeSendTestEmail         = "notify:test_email"
)

// NotifyUpdatePublishedPayload is enqueued after an update is published.
type NotifyUpdatePublishedPayload struct {
	UpdateID string `json:"update_id"`
	Title    string `json:"title"`
}

func NewNotifyUpdatePublishedTask(updateID, title string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyUpdatePublishedPayload{
		UpdateID: updateID,
		Title:    title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notify payload: %w", err)
	}
	return asynq.NewTask(TypeNotifyUpdatePublished, payload, asynq.Queue("default"), asynq.MaxRetry(5)), nil
}

// SendTestEmailPayload is enqueued from the admin test endpoint.
type SendTestEmailPayload struct {
	Recipient string `json:"recipient"`
}

func NewSendTestEmailTask(recipient string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendTestEmailPayload{Recipient: recipient})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal test email payload: %w", err)
	}
	return asynq.NewTask(TypeSendTestEmail, payload, asynq.Queue("low"), asynq.MaxRetry(2)), nil
}
