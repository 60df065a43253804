package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/domains/subscriber/job"
	"travelblog-backend/internal/domains/update/model"
	"travelblog-backend/internal/domains/update/repository"
)

// DuplicateMarker is appended to the title of a duplicated update.
const DuplicateMarker = " (copie)"

// GalleryCleaner removes gallery photos that belonged to a deleted update.
type GalleryCleaner interface {
	DeleteBySourceUpdate(ctx context.Context, updateID string) error
}

type updateService struct {
	remote  repository.UpdateRepository
	local   repository.UpdateRepository
	gallery GalleryCleaner
	tasks   *asynq.Client
}

func NewUpdateService(
	remote repository.UpdateRepository,
	local repository.UpdateRepository,
	gallery GalleryCleaner,
	tasks *asynq.Client,
) UpdateService {
	return &updateService{
		remote:  remote,
		local:   local,
		gallery: gallery,
		tasks:   tasks,
	}
}

// List merges the remote and local stores.
// A remote failure degrades to the local drafts instead of erroring:
// the public site keeps rendering whatever is available.
func (s *updateService) List(ctx context.Context, opts ListOptions) ([]model.TravelUpdate, error) {
	local, err := s.local.List(ctx, opts.IncludeDrafts)
	if err != nil {
		return nil, fmt.Errorf("failed to read local updates: %w", err)
	}

	// source=local is the staged admin fetch: render drafts immediately,
	// the merged list follows in a second request.
	if opts.Source == TargetLocal {
		return MergeRemoteAndLocal(nil, local, opts.Order), nil
	}

	remote, err := s.remote.List(ctx, opts.IncludeDrafts)
	if err != nil {
		log.Error().Err(err).Msg("Remote update fetch failed, serving local drafts only")
		return MergeRemoteAndLocal(nil, local, opts.Order), nil
	}

	return MergeRemoteAndLocal(remote, local, opts.Order), nil
}

func (s *updateService) Get(ctx context.Context, id string) (*model.TravelUpdate, error) {
	update, err := s.remote.GetByID(ctx, id)
	if err == nil {
		return update, nil
	}
	return s.local.GetByID(ctx, id)
}

func (s *updateService) Create(ctx context.Context, req model.UpdateRequest, target string) (*model.TravelUpdate, error) {
	// Step 1: validate the payload before touching any store
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: build the model, filling generated fields
	update := req.ToModel()
	normalizeUpdate(&update)

	// Step 3: persist (base + photos + extras in one transaction)
	if err := s.repoFor(target).Create(ctx, &update); err != nil {
		return nil, err
	}

	// Step 4: notify subscribers when the entry goes live
	s.notifyIfPublished(&update, target)

	log.Info().Str("id", update.ID).Int("day", update.Day).Str("target", target).Msg("Created travel update")
	return &update, nil
}

func (s *updateService) Replace(ctx context.Context, id string, req model.UpdateRequest, target string) (*model.TravelUpdate, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	existing, err := s.repoFor(target).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := req.ToModel()
	update.ID = id
	update.CreatedAt = existing.CreatedAt
	normalizeUpdate(&update)

	wasPublished := existing.IsPublished()

	if err := s.repoFor(target).Replace(ctx, &update); err != nil {
		return nil, err
	}

	// Only a draft -> published transition triggers the newsletter.
	if !wasPublished {
		s.notifyIfPublished(&update, target)
	}

	log.Info().Str("id", update.ID).Str("target", target).Msg("Replaced travel update")
	return &update, nil
}

func (s *updateService) Delete(ctx context.Context, id, target string) error {
	if err := s.repoFor(target).Delete(ctx, id); err != nil {
		return err
	}

	// Gallery photos sourced from this update follow it out. A failure
	// here is logged, not surfaced: the nightly sweep catches leftovers.
	if target != TargetLocal && s.gallery != nil {
		if err := s.gallery.DeleteBySourceUpdate(ctx, id); err != nil {
			log.Error().Err(err).Str("update_id", id).Msg("Failed to remove gallery photos for deleted update")
		}
	}

	log.Info().Str("id", id).Str("target", target).Msg("Deleted travel update")
	return nil
}

// Duplicate clones an update into a fresh draft: new id, today's date,
// a marked title, and the same location, spots, photos and extras.
func (s *updateService) Duplicate(ctx context.Context, id, target string) (*model.TravelUpdate, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := *source
	clone.ID = uuid.New().String()
	clone.Status = model.StatusDraft
	clone.Date = time.Now()
	clone.CreatedAt = time.Now()
	clone.Title = source.Title + DuplicateMarker

	clone.Photos = make([]model.TravelPhoto, len(source.Photos))
	for i, photo := range source.Photos {
		clone.Photos[i] = model.TravelPhoto{
			ID:       uuid.New().String(),
			UpdateID: clone.ID,
			URL:      photo.URL,
		}
	}

	clone.Spots = append([]model.TravelSpot(nil), source.Spots...)
	if source.Extras != nil {
		extras := *source.Extras
		extras.Highlights = append([]string(nil), source.Extras.Highlights...)
		clone.Extras = &extras
	}

	if err := s.repoFor(target).Create(ctx, &clone); err != nil {
		return nil, err
	}

	log.Info().Str("source_id", id).Str("clone_id", clone.ID).Msg("Duplicated travel update")
	return &clone, nil
}

// Import validates every entry first, then persists them one by one.
// A validation failure anywhere rejects the whole batch before any write.
func (s *updateService) Import(ctx context.Context, req model.ImportRequest, target string) (*model.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Phase 1: validate all rows
	for i, entry := range req.Updates {
		if err := entry.Validate(); err != nil {
			return nil, model.NewImportValidationError(i, err)
		}
	}

	// Phase 2: persist
	repo := s.repoFor(target)
	result := &model.ImportResult{}
	for _, entry := range req.Updates {
		update := entry.ToModel()
		normalizeUpdate(&update)

		if err := repo.Create(ctx, &update); err != nil {
			return nil, fmt.Errorf("failed to import update %q: %w", update.Title, err)
		}
		result.Imported++
		result.IDs = append(result.IDs, update.ID)
	}

	log.Info().Int("imported", result.Imported).Str("target", target).Msg("Imported travel updates")
	return result, nil
}

func (s *updateService) repoFor(target string) repository.UpdateRepository {
	if target == TargetLocal {
		return s.local
	}
	return s.remote
}

// notifyIfPublished enqueues the newsletter task. Fire-and-forget: an
// enqueue failure is logged and never fails the content operation.
func (s *updateService) notifyIfPublished(update *model.TravelUpdate, target string) {
	if !update.IsPublished() || target == TargetLocal || s.tasks == nil {
		return
	}

	task, err := job.NewNotifyUpdatePublishedTask(update.ID, update.Title)
	if err != nil {
		log.Error().Err(err).Str("update_id", update.ID).Msg("Failed to build notify task")
		return
	}

	if _, err := s.tasks.Enqueue(task); err != nil {
		log.Error().Err(err).Str("update_id", update.ID).Msg("Failed to enqueue notify task")
		return
	}

	log.Info().Str("update_id", update.ID).Msg("Enqueued subscriber notification")
}

// normalizeUpdate fills generated fields: ids for the update, its photos
// and spots, the photo back-references, and timestamps.
func normalizeUpdate(update *model.TravelUpdate) {
	if update.ID == "" {
		update.ID = uuid.New().String()
	}
	if update.Date.IsZero() {
		update.Date = time.Now()
	}
	if update.CreatedAt.IsZero() {
		update.CreatedAt = time.Now()
	}
	if update.Status == "" {
		update.Status = model.StatusPublished
	}

	for i := range update.Photos {
		if update.Photos[i].ID == "" {
			update.Photos[i].ID = uuid.New().String()
		}
		update.Photos[i].UpdateID = update.ID
		if update.Photos[i].CreatedAt.IsZero() {
			update.Photos[i].CreatedAt = time.Now()
		}
	}

	for i := range update.Spots {
		if update.Spots[i].ID == "" {
			update.Spots[i].ID = uuid.New().String()
		}
		if update.Spots[i].Day == 0 {
			update.Spots[i].Day = update.Day
		}
	}
}
