package repository

import (
	"context"

	"travelblog-backend/internal/domains/gallery/model"
)

// GalleryRepository is the persistence boundary for gallery photos.
type GalleryRepository interface {
	List(ctx context.Context) ([]model.GalleryPhoto, error)
	CreateBatch(ctx context.Context, photos []model.GalleryPhoto) error
	Delete(ctx context.Context, id string) error
	// DeleteBySourceUpdate removes every photo sourced from one update.
	DeleteBySourceUpdate(ctx context.Context, updateID string) error
}

// InteractionRepository covers likes and comments, which only exist
// in the remote store.
type InteractionRepository interface {
	// Like toggles one visitor's like on a photo. The fingerprint keys
	// the like; repeating it removes the like again. Returns the new
	// count and whether the photo is now liked by that visitor.
	Like(ctx context.Context, photoID, fingerprint string) (int, bool, error)
	ListComments(ctx context.Context, photoID string) ([]model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	// DeleteOrphanedUpdatePhotos removes photos whose source update no
	// longer exists. Returns the number of photos removed.
	DeleteOrphanedUpdatePhotos(ctx context.Context) (int, error)
}
