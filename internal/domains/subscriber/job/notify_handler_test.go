package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelblog-backend/internal/config"
	"travelblog-backend/internal/domains/subscriber/model"
)

type fakeSubscriberRepository struct {
	subscribers []model.Subscriber
}

func (f *fakeSubscriberRepository) Create(ctx context.Context, s *model.Subscriber) error { return nil }
func (f *fakeSubscriberRepository) Deactivate(ctx context.Context, email string) error    { return nil }
func (f *fakeSubscriberRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	return f.subscribers, nil
}
func (f *fakeSubscriberRepository) ListActive(ctx context.Context) ([]model.Subscriber, error) {
	var active []model.Subscriber
	for _, s := range f.subscribers {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeEmailService struct {
	batches   [][]string
	failCount int
}

func (f *fakeEmailService) SendUpdatePublished(recipients []string, title, url string) error {
	if f.failCount > 0 {
		f.failCount--
		return errors.New("smtp unavailable")
	}
	f.batches = append(f.batches, recipients)
	return nil
}

func (f *fakeEmailService) SendTestEmail(recipient string) error {
	f.batches = append(f.batches, []string{recipient})
	return nil
}

func subscribers(n int) []model.Subscriber {
	var out []model.Subscriber
	for i := 0; i < n; i++ {
		out = append(out, model.Subscriber{
			Email:  string(rune('a'+i)) + "@example.com",
			Active: true,
		})
	}
	return out
}

func jobsConfig(batchSize int) config.JobsConfig {
	return config.JobsConfig{NotifyBatchSize: batchSize, NotifyBatchPause: time.Millisecond}
}

func TestNotify_SendsInBatches(t *testing.T) {
	repo := &fakeSubscriberRepository{subscribers: subscribers(5)}
	mail := &fakeEmailService{}
	handler := NewNotifyHandler(repo, mail, jobsConfig(2), "https://blog.example.com")

	task, err := NewNotifyUpdatePublishedTask("u1", "Cercle d'or")
	require.NoError(t, err)

	require.NoError(t, handler.HandleNotifyUpdatePublished(context.Background(), task))

	// 5 recipients, batch size 2: batches of 2, 2 and 1.
	require.Len(t, mail.batches, 3)
	assert.Len(t, mail.batches[0], 2)
	assert.Len(t, mail.batches[1], 2)
	assert.Len(t, mail.batches[2], 1)
}

func TestNotify_SkipsInactiveSubscribers(t *testing.T) {
	subs := subscribers(3)
	subs[1].Active = false
	repo := &fakeSubscriberRepository{subscribers: subs}
	mail := &fakeEmailService{}
	handler := NewNotifyHandler(repo, mail, jobsConfig(10), "https://blog.example.com")

	task, err := NewNotifyUpdatePublishedTask("u1", "Titre")
	require.NoError(t, err)

	require.NoError(t, handler.HandleNotifyUpdatePublished(context.Background(), task))

	require.Len(t, mail.batches, 1)
	assert.Len(t, mail.batches[0], 2)
}

func TestNotify_PartialBatchFailureDoesNotFailTask(t *testing.T) {
	repo := &fakeSubscriberRepository{subscribers: subscribers(4)}
	mail := &fakeEmailService{failCount: 1}
	handler := NewNotifyHandler(repo, mail, jobsConfig(2), "https://blog.example.com")

	task, err := NewNotifyUpdatePublishedTask("u1", "Titre")
	require.NoError(t, err)

	// First batch fails, second goes through: the task succeeds so the
	// delivered batch is not resent on retry.
	require.NoError(t, handler.HandleNotifyUpdatePublished(context.Background(), task))
	assert.Len(t, mail.batches, 1)
}

func TestNotify_AllBatchesFailedRetries(t *testing.T) {
	repo := &fakeSubscriberRepository{subscribers: subscribers(4)}
	mail := &fakeEmailService{failCount: 2}
	handler := NewNotifyHandler(repo, mail, jobsConfig(2), "https://blog.example.com")

	task, err := NewNotifyUpdatePublishedTask("u1", "Titre")
	require.NoError(t, err)

	assert.Error(t, handler.HandleNotifyUpdatePublished(context.Background(), task))
}

func TestNotify_NoSubscribersIsNoop(t *testing.T) {
	repo := &fakeSubscriberRepository{}
	mail := &fakeEmailService{}
	handler := NewNotifyHandler(repo, mail, jobsConfig(2), "https://blog.example.com")

	task, err := NewNotifyUpdatePublishedTask("u1", "Titre")
	require.NoError(t, err)

	require.NoError(t, handler.HandleNotifyUpdatePublished(context.Background(), task))
	assert.Empty(t, mail.batches)
}
