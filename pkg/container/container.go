package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/config"
	authhandler "travelblog-backend/internal/domains/auth/handler"
	authservice "travelblog-backend/internal/domains/auth/service"
	galleryhandler "travelblog-backend/internal/domains/gallery/handler"
	galleryrepo "travelblog-backend/internal/domains/gallery/repository"
	galleryservice "travelblog-backend/internal/domains/gallery/service"
	locationhandler "travelblog-backend/internal/domains/location/handler"
	locationservice "travelblog-backend/internal/domains/location/service"
	subscriberhandler "travelblog-backend/internal/domains/subscriber/handler"
	subscriberrepo "travelblog-backend/internal/domains/subscriber/repository"
	subscriberservice "travelblog-backend/internal/domains/subscriber/service"
	updatehandler "travelblog-backend/internal/domains/update/handler"
	updaterepo "travelblog-backend/internal/domains/update/repository"
	updateservice "travelblog-backend/internal/domains/update/service"
	uploadhandler "travelblog-backend/internal/domains/upload/handler"
	uploadservice "travelblog-backend/internal/domains/upload/service"
	"travelblog-backend/internal/infrastructure/cache"
	"travelblog-backend/internal/infrastructure/database"
	"travelblog-backend/internal/infrastructure/geocoder"
	"travelblog-backend/internal/infrastructure/localstore"
	"travelblog-backend/internal/infrastructure/storage"
	"travelblog-backend/pkg/jwt"
)

// Container wires the whole API application together.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	Storage    storage.PhotoStorage
	LocalStore *localstore.Store
	TaskClient *asynq.Client
	JWT        *jwt.Manager

	// Handlers
	UpdateHandler     *updatehandler.UpdateHandler
	GalleryHandler    *galleryhandler.GalleryHandler
	LocationHandler   *locationhandler.LocationHandler
	SubscriberHandler *subscriberhandler.SubscriberHandler
	UploadHandler     *uploadhandler.UploadHandler
	AuthHandler       *authhandler.AuthHandler
}

// New builds the container in layers:
// config → infrastructure → repositories → services → handlers.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ====== INFRASTRUCTURE ======
	log.Info().Msg("🚀 Initializing infrastructure...")

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	c.DB = db

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis init failed: %w", err)
	}
	log.Info().Str("host", cfg.Redis.Host).Msg("✅ Connected to Redis")

	c.Storage, err = storage.NewMinioStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	c.LocalStore, err = localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		return nil, fmt.Errorf("local store init failed: %w", err)
	}

	c.TaskClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWT = jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry)

	// ====== REPOSITORIES ======
	remoteUpdates := updaterepo.NewPostgresUpdateRepository(db.Pool)
	localUpdates := updaterepo.NewLocalUpdateRepository(c.LocalStore)
	remoteGallery := galleryrepo.NewPostgresGalleryRepository(db.Pool)
	localGallery := galleryrepo.NewLocalGalleryRepository(c.LocalStore)
	subscribers := subscriberrepo.NewPostgresSubscriberRepository(db.Pool)

	// ====== SERVICES ======
	gallerySvc := galleryservice.NewGalleryService(remoteGallery, localGallery, remoteGallery)
	updateSvc := updateservice.NewUpdateService(remoteUpdates, localUpdates, gallerySvc, c.TaskClient)
	locationSvc := locationservice.NewLocationService(
		geocoder.NewNominatimGeocoder(cfg.Geocoder, c.Cache),
	)
	subscriberSvc := subscriberservice.NewSubscriberService(subscribers, c.TaskClient)
	uploadSvc := uploadservice.NewUploadService(c.Storage)
	authSvc := authservice.NewAuthService(cfg.Admin, c.JWT)

	// ====== HANDLERS ======
	c.UpdateHandler = updatehandler.NewUpdateHandler(updateSvc)
	c.GalleryHandler = galleryhandler.NewGalleryHandler(gallerySvc)
	c.LocationHandler = locationhandler.NewLocationHandler(locationSvc)
	c.SubscriberHandler = subscriberhandler.NewSubscriberHandler(subscriberSvc)
	c.UploadHandler = uploadhandler.NewUploadHandler(uploadSvc)
	c.AuthHandler = authhandler.NewAuthHandler(authSvc)

	log.Info().Msg("✅ Container initialized")
	return c, nil
}

// Cleanup releases every held connection.
func (c *Container) Cleanup() {
	if c.TaskClient != nil {
		if err := c.TaskClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close task client")
		}
	}
	if c.LocalStore != nil {
		if err := c.LocalStore.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close local store")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("👋 Container cleaned up")
}
