package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelblog-backend/internal/domains/subscriber/model"
)

// SubscriberRepository is the persistence boundary for newsletter
// subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *model.Subscriber) error
	ListActive(ctx context.Context) ([]model.Subscriber, error)
	List(ctx context.Context) ([]model.Subscriber, error)
	Deactivate(ctx context.Context, email string) error
}

type postgresSubscriberRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriberRepository(pool *pgxpool.Pool) SubscriberRepository {
	return &postgresSubscriberRepository{pool: pool}
}

// Create inserts a subscriber. Re-subscribing a deactivated address
// reactivates it instead of failing.
func (r *postgresSubscriberRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	var existingActive bool
	err := r.pool.QueryRow(ctx,
		`SELECT active FROM subscribers WHERE email = $1`, subscriber.Email).Scan(&existingActive)

	if err == nil {
		if existingActive {
			return model.ErrAlreadySubscribed
		}
		_, err = r.pool.Exec(ctx,
			`UPDATE subscribers SET active = TRUE WHERE email = $1`, subscriber.Email)
		if err != nil {
			return fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check subscriber: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO subscribers (id, email, active, created_at)
		VALUES ($1, $2, $3, $4)`,
		subscriber.ID, subscriber.Email, subscriber.Active, subscriber.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}

func (r *postgresSubscriberRepository) ListActive(ctx context.Context) ([]model.Subscriber, error) {
	return r.list(ctx, `SELECT id, email, active, created_at FROM subscribers WHERE active = TRUE ORDER BY created_at ASC`)
}

func (r *postgresSubscriberRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	return r.list(ctx, `SELECT id, email, active, created_at FROM subscribers ORDER BY created_at ASC`)
}

func (r *postgresSubscriberRepository) list(ctx context.Context, query string) ([]model.Subscriber, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

func (r *postgresSubscriberRepository) Deactivate(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscribers SET active = FALSE WHERE email = $1 AND active = TRUE`, email)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubscriberNotFound
	}
	return nil
}
