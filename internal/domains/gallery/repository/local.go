package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"travelblog-backend/internal/domains/gallery/model"
	"travelblog-backend/internal/infrastructure/localstore"
)

const localBucket = "gallery_photos"

// localGalleryRepository keeps staged gallery photos in the draft store.
// Likes and comments are remote-only, so it implements GalleryRepository
// and nothing more.
type localGalleryRepository struct {
	store *localstore.Store
}

func NewLocalGalleryRepository(store *localstore.Store) GalleryRepository {
	return &localGalleryRepository{store: store}
}

func (r *localGalleryRepository) List(ctx context.Context) ([]model.GalleryPhoto, error) {
	payloads, err := r.store.List(ctx, localBucket)
	if err != nil {
		return nil, err
	}

	var photos []model.GalleryPhoto
	for _, payload := range payloads {
		var photo model.GalleryPhoto
		if err := json.Unmarshal(payload, &photo); err != nil {
			return nil, fmt.Errorf("failed to decode local gallery photo: %w", err)
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func (r *localGalleryRepository) CreateBatch(ctx context.Context, photos []model.GalleryPhoto) error {
	for _, photo := range photos {
		payload, err := json.Marshal(photo)
		if err != nil {
			return fmt.Errorf("failed to encode local gallery photo: %w", err)
		}
		if err := r.store.Upsert(ctx, localBucket, photo.ID, payload); err != nil {
			return err
		}
	}
	return nil
}

func (r *localGalleryRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.store.Delete(ctx, localBucket, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrPhotoNotFound
	}
	return nil
}

func (r *localGalleryRepository) DeleteBySourceUpdate(ctx context.Context, updateID string) error {
	photos, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, photo := range photos {
		if photo.Source == model.SourceUpdate && photo.UpdateID == updateID {
			if _, err := r.store.Delete(ctx, localBucket, photo.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
