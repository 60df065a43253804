package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/domains/gallery/model"
	"travelblog-backend/internal/domains/gallery/repository"
)

// GalleryService is the gallery read and authoring surface.
type GalleryService interface {
	List(ctx context.Context, source string) ([]model.GalleryPhoto, error)
	CreateBatch(ctx context.Context, req model.CreatePhotosRequest, target string) ([]model.GalleryPhoto, error)
	Delete(ctx context.Context, id, target string) error
	Like(ctx context.Context, photoID, fingerprint string) (int, bool, error)
	ListComments(ctx context.Context, photoID string) ([]model.Comment, error)
	CreateComment(ctx context.Context, photoID string, req model.CommentRequest) (*model.Comment, error)
	DeleteBySourceUpdate(ctx context.Context, updateID string) error
}

const targetLocal = "local"

type galleryService struct {
	remote       repository.GalleryRepository
	local        repository.GalleryRepository
	interactions repository.InteractionRepository
}

func NewGalleryService(
	remote repository.GalleryRepository,
	local repository.GalleryRepository,
	interactions repository.InteractionRepository,
) GalleryService {
	return &galleryService{
		remote:       remote,
		local:        local,
		interactions: interactions,
	}
}

// List merges remote and local photos, newest first. Same policy as the
// updates list: concat remote then local, stable sort, no dedup, and a
// remote failure degrades to local-only.
func (s *galleryService) List(ctx context.Context, source string) ([]model.GalleryPhoto, error) {
	local, err := s.local.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local gallery: %w", err)
	}

	var remote []model.GalleryPhoto
	if source != targetLocal {
		remote, err = s.remote.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Remote gallery fetch failed, serving local photos only")
			remote = nil
		}
	}

	merged := make([]model.GalleryPhoto, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	merged = append(merged, local...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged, nil
}

func (s *galleryService) CreateBatch(ctx context.Context, req model.CreatePhotosRequest, target string) ([]model.GalleryPhoto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, photo := range req.Photos {
		if err := photo.Validate(); err != nil {
			return nil, err
		}
	}

	photos := make([]model.GalleryPhoto, 0, len(req.Photos))
	for _, entry := range req.Photos {
		photo := entry.ToModel()
		if photo.ID == "" {
			photo.ID = uuid.New().String()
		}
		if photo.Date.IsZero() {
			photo.Date = time.Now()
		}
		photo.CreatedAt = time.Now()
		photos = append(photos, photo)
	}

	if err := s.repoFor(target).CreateBatch(ctx, photos); err != nil {
		return nil, err
	}

	log.Info().Int("count", len(photos)).Str("target", target).Msg("Added gallery photos")
	return photos, nil
}

func (s *galleryService) Delete(ctx context.Context, id, target string) error {
	return s.repoFor(target).Delete(ctx, id)
}

func (s *galleryService) Like(ctx context.Context, photoID, fingerprint string) (int, bool, error) {
	return s.interactions.Like(ctx, photoID, fingerprint)
}

func (s *galleryService) ListComments(ctx context.Context, photoID string) ([]model.Comment, error) {
	return s.interactions.ListComments(ctx, photoID)
}

func (s *galleryService) CreateComment(ctx context.Context, photoID string, req model.CommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PhotoID:   photoID,
		Author:    req.Author,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.interactions.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteBySourceUpdate cascades an update deletion into both stores.
func (s *galleryService) DeleteBySourceUpdate(ctx context.Context, updateID string) error {
	if err := s.remote.DeleteBySourceUpdate(ctx, updateID); err != nil {
		return err
	}
	return s.local.DeleteBySourceUpdate(ctx, updateID)
}

func (s *galleryService) repoFor(target string) repository.GalleryRepository {
	if target == targetLocal {
		return s.local
	}
	return s.remote
}
