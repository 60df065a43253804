package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/domains/subscriber/job"
	"travelblog-backend/internal/domains/subscriber/model"
	"travelblog-backend/internal/domains/subscriber/repository"
)

// SubscriberService manages the newsletter audience.
type SubscriberService interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.Subscriber, error)
	SendTestEmail(ctx context.Context, req model.TestEmailRequest) error
}

type subscriberService struct {
	repo  repository.SubscriberRepository
	tasks *asynq.Client
}

func NewSubscriberService(repo repository.SubscriberRepository, tasks *asynq.Client) SubscriberService {
	return &subscriberService{repo: repo, tasks: tasks}
}

func (s *subscriberService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	subscriber := &model.Subscriber{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, subscriber); err != nil {
		return nil, err
	}

	log.Info().Str("email", subscriber.Email).Msg("New newsletter subscriber")
	return subscriber, nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, email string) error {
	return s.repo.Deactivate(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *subscriberService) List(ctx context.Context) ([]model.Subscriber, error) {
	return s.repo.List(ctx)
}

// SendTestEmail queues a one-off test email from the admin screen.
func (s *subscriberService) SendTestEmail(ctx context.Context, req model.TestEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	task, err := job.NewSendTestEmailTask(req.Recipient)
	if err != nil {
		return err
	}
	if _, err := s.tasks.Enqueue(task); err != nil {
		return err
	}

	log.Info().Str("recipient", req.Recipient).Msg("Enqueued test email")
	return nil
}
