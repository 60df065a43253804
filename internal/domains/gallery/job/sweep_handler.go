package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/domains/gallery/repository"
)

// SweepHandler runs the scheduled gallery maintenance.
type SweepHandler struct {
	interactions repository.InteractionRepository
}

func NewSweepHandler(interactions repository.InteractionRepository) *SweepHandler {
	return &SweepHandler{interactions: interactions}
}

// HandleSweepOrphanedPhotos deletes gallery photos whose source update
// is gone. Runs nightly from the scheduler.
func (h *SweepHandler) HandleSweepOrphanedPhotos(ctx context.Context, t *asynq.Task) error {
	removed, err := h.interactions.DeleteOrphanedUpdatePhotos(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Msg("🧹 Removed orphaned gallery photos")
	} else {
		log.Debug().Msg("No orphaned gallery photos")
	}
	return nil
}
