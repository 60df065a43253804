package job

import "github.com/hibiken/asynq"

// TypeSweepOrphanedPhotos is scheduled nightly: it removes gallery
// photos whose source update no longer exists.
const TypeSweepOrphanedPhotos = "gallery:sweep_orphans"

func NewSweepOrphanedPhotosTask() *asynq.Task {
	return asynq.NewTask(TypeSweepOrphanedPhotos, nil, asynq.Queue("low"))
}
