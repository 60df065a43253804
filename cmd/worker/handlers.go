package main

import (
	"github.com/hibiken/asynq"

	"travelblog-backend/internal/config"
	galleryjob "travelblog-backend/internal/domains/gallery/job"
	galleryrepo "travelblog-backend/internal/domains/gallery/repository"
	subscriberjob "travelblog-backend/internal/domains/subscriber/job"
	subscriberrepo "travelblog-backend/internal/domains/subscriber/repository"
	"travelblog-backend/internal/infrastructure/database"
	"travelblog-backend/internal/infrastructure/email"
)

// registerHandlers wires every task type to its handler.
func registerHandlers(db *database.PostgresDB, emailService email.EmailService, cfg *config.Config) *asynq.ServeMux {
	subscribers := subscriberrepo.NewPostgresSubscriberRepository(db.Pool)
	gallery := galleryrepo.NewPostgresGalleryRepository(db.Pool)

	notifyHandler := subscriberjob.NewNotifyHandler(subscribers, emailService, cfg.Jobs, cfg.App.PublicURL)
	sweepHandler := galleryjob.NewSweepHandler(gallery)

	mux := asynq.NewServeMux()
	mux.HandleFunc(subscriberjob.TypeNotifyUpdatePublished, notifyHandler.HandleNotifyUpdatePublished)
	mux.HandleFunc(subscriberjob.TypeSendTestEmail, notifyHandler.HandleSendTestEmail)
	mux.HandleFunc(galleryjob.TypeSweepOrphanedPhotos, sweepHandler.HandleSweepOrphanedPhotos)

	return mux
}
