package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/config"
	"travelblog-backend/internal/infrastructure/database"
	"travelblog-backend/internal/infrastructure/email"
	"travelblog-backend/internal/infrastructure/queue"
	"travelblog-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}

	cfg := config.Load()
	logger.Init(cfg.App.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.NewPostgresDB(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	emailService := email.NewSMTPService(cfg.SMTP)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"high":    6,
			"default": 3,
			"low":     1,
		},
	})

	mux := registerHandlers(db, emailService, cfg)

	// Scheduler runs alongside the worker in the same process.
	scheduler, err := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scheduler")
	}

	go func() {
		log.Info().Msg("⏰ Scheduler starting")
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("Scheduler failed")
		}
	}()

	log.Info().Str("env", cfg.App.Env).Msg("🔧 Worker starting")
	if err := server.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("Worker failed")
	}
}
