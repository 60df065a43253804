package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"travelblog-backend/internal/domains/gallery/model"
	"travelblog-backend/internal/domains/gallery/service"
	"travelblog-backend/internal/shared/response"
)

type GalleryHandler struct {
	service service.GalleryService
}

func NewGalleryHandler(s service.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: s}
}

func (h *GalleryHandler) List(c *gin.Context) {
	photos, err := h.service.List(c.Request.Context(), c.Query("source"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, photos, gin.H{"count": len(photos)})
}

func (h *GalleryHandler) CreateBatch(c *gin.Context) {
	var req model.CreatePhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	photos, err := h.service.CreateBatch(c.Request.Context(), req, c.Query("target"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, photos)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Query("target")); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, gin.H{"deleted": true})
}

type likeRequest struct {
	Fingerprint string `json:"fingerprint"`
}

// Like toggles a visitor's like. The client sends a stable fingerprint;
// without one the client IP stands in, so repeat calls from the same
// visitor toggle instead of piling up.
func (h *GalleryHandler) Like(c *gin.Context) {
	var req likeRequest
	_ = c.ShouldBindJSON(&req)
	if req.Fingerprint == "" {
		req.Fingerprint = c.ClientIP()
	}

	likes, liked, err := h.service.Like(c.Request.Context(), c.Param("id"), req.Fingerprint)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, gin.H{"likes": likes, "liked": liked})
}

func (h *GalleryHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, comments, gin.H{"count": len(comments)})
}

func (h *GalleryHandler) CreateComment(c *gin.Context) {
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, comment)
}

func (h *GalleryHandler) mapError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, model.ErrPhotoNotFound):
		response.NotFound(c, model.ErrCodePhotoNotFound, "gallery photo not found")
	case errors.As(err, &validationErrs):
		response.UnprocessableEntity(c, model.ErrCodeInvalidPayload, err.Error())
	default:
		response.InternalServerError(c, model.ErrCodeStorageFailure, "failed to process gallery request")
	}
}
