package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"travelblog-backend/internal/shared/middleware"
	"travelblog-backend/internal/shared/response"
	"travelblog-backend/pkg/container"
)

// SetupRouter builds the full route tree.
// Public reads stay open; every authoring route sits behind AdminAuth.
func SetupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(c.Config.App.PublicURL),
	)

	router.GET("/health", healthCheckHandler(c))

	v1 := router.Group("/api/v1")
	adminAuth := middleware.AdminAuth(c.JWT)

	// ====== UPDATES ======
	updates := v1.Group("/updates")
	{
		updates.GET("", c.UpdateHandler.List)
		updates.GET("/:id", c.UpdateHandler.Get)
		updates.POST("", adminAuth, c.UpdateHandler.Create)
		updates.PUT("/:id", adminAuth, c.UpdateHandler.Replace)
		updates.DELETE("/:id", adminAuth, c.UpdateHandler.Delete)
		updates.POST("/:id/duplicate", adminAuth, c.UpdateHandler.Duplicate)
		updates.POST("/import", adminAuth, c.UpdateHandler.Import)
	}

	// ====== GALLERY ======
	gallery := v1.Group("/gallery")
	{
		gallery.GET("", c.GalleryHandler.List)
		gallery.POST("", adminAuth, c.GalleryHandler.CreateBatch)
		gallery.DELETE("/:id", adminAuth, c.GalleryHandler.Delete)
		gallery.POST("/:id/like", c.GalleryHandler.Like)
		gallery.GET("/:id/comments", c.GalleryHandler.ListComments)
		gallery.POST("/:id/comments", c.GalleryHandler.CreateComment)
	}

	// ====== LOCATIONS ======
	locations := v1.Group("/locations")
	{
		locations.POST("/extract", adminAuth, c.LocationHandler.Extract)
		locations.GET("/search", adminAuth, c.LocationHandler.Search)
	}

	// ====== UPLOAD ======
	v1.POST("/upload", adminAuth, c.UploadHandler.Upload)

	// ====== SUBSCRIBERS ======
	subscribers := v1.Group("/subscribers")
	{
		subscribers.POST("", c.SubscriberHandler.Subscribe)
		subscribers.DELETE("/:email", c.SubscriberHandler.Unsubscribe)
	}

	// ====== ADMIN ======
	admin := v1.Group("/admin")
	{
		admin.POST("/login", c.AuthHandler.Login)
		admin.GET("/subscribers", adminAuth, c.SubscriberHandler.List)
		admin.POST("/notifications/test", adminAuth, c.SubscriberHandler.SendTestEmail)
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		checks := gin.H{
			"database": "ok",
			"cache":    "ok",
			"storage":  "ok",
		}
		healthy := true

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		}
		if err := c.Storage.HealthCheck(checkCtx); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		}

		status := 200
		if !healthy {
			status = 503
		}
		response.SuccessWithMeta(ctx, status, gin.H{"healthy": healthy}, checks)
	}
}
