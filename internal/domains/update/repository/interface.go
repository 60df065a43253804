package repository

import (
	"context"

	"travelblog-backend/internal/domains/update/model"
)

// UpdateRepository is the persistence boundary for travel updates.
// Both the remote (Postgres) and the local (draft file) store implement it.
type UpdateRepository interface {
	// List returns updates ordered by date descending. Draft entries
	// are excluded unless includeDrafts is set.
	List(ctx context.Context, includeDrafts bool) ([]model.TravelUpdate, error)

	GetByID(ctx context.Context, id string) (*model.TravelUpdate, error)

	// Create persists the base record, its photos and its extras.
	Create(ctx context.Context, update *model.TravelUpdate) error

	// Replace overwrites the stored record with exactly the given state.
	// The photo set is replaced wholesale, not merged.
	Replace(ctx context.Context, update *model.TravelUpdate) error

	Delete(ctx context.Context, id string) error
}
