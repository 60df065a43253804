package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"travelblog-backend/internal/domains/update/model"
	"travelblog-backend/internal/infrastructure/localstore"
)

const localBucket = "updates"

// localUpdateRepository keeps draft updates in the sqlite draft store.
// Records are serialized whole; the local store has no joined tables.
type localUpdateRepository struct {
	store *localstore.Store
}

func NewLocalUpdateRepository(store *localstore.Store) UpdateRepository {
	return &localUpdateRepository{store: store}
}

func (r *localUpdateRepository) List(ctx context.Context, includeDrafts bool) ([]model.TravelUpdate, error) {
	payloads, err := r.store.List(ctx, localBucket)
	if err != nil {
		return nil, err
	}

	var updates []model.TravelUpdate
	for _, payload := range payloads {
		var update model.TravelUpdate
		if err := json.Unmarshal(payload, &update); err != nil {
			return nil, fmt.Errorf("failed to decode local update: %w", err)
		}
		if !includeDrafts && !update.IsPublished() {
			continue
		}
		updates = append(updates, update)
	}
	return updates, nil
}

func (r *localUpdateRepository) GetByID(ctx context.Context, id string) (*model.TravelUpdate, error) {
	updates, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range updates {
		if updates[i].ID == id {
			return &updates[i], nil
		}
	}
	return nil, model.ErrUpdateNotFound
}

func (r *localUpdateRepository) Create(ctx context.Context, update *model.TravelUpdate) error {
	return r.upsert(ctx, update)
}

func (r *localUpdateRepository) Replace(ctx context.Context, update *model.TravelUpdate) error {
	return r.upsert(ctx, update)
}

func (r *localUpdateRepository) upsert(ctx context.Context, update *model.TravelUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode local update: %w", err)
	}
	return r.store.Upsert(ctx, localBucket, update.ID, payload)
}

func (r *localUpdateRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.store.Delete(ctx, localBucket, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrUpdateNotFound
	}
	return nil
}
