package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	galleryjob "travelblog-backend/internal/domains/gallery/job"
)

// NewScheduler registers the recurring tasks.
func NewScheduler(redisAddr, redisPassword string, redisDB int) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{},
	)

	// Nightly at 03:00: remove gallery photos whose update is gone.
	entryID, err := scheduler.Register("0 3 * * *", galleryjob.NewSweepOrphanedPhotosTask())
	if err != nil {
		return nil, fmt.Errorf("failed to register orphan sweep: %w", err)
	}
	log.Info().Str("entry_id", entryID).Msg("Registered nightly gallery sweep")

	return scheduler, nil
}
