package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"travelblog-backend/internal/domains/update/model"
	"travelblog-backend/internal/domains/update/service"
	"travelblog-backend/internal/shared/response"
)

type UpdateHandler struct {
	service service.UpdateService
}

func NewUpdateHandler(s service.UpdateService) *UpdateHandler {
	return &UpdateHandler{service: s}
}

// List handles GET /updates.
// Query params: include_drafts (admin), source=local (staged fetch),
// order=day|date (default date, newest first).
func (h *UpdateHandler) List(c *gin.Context) {
	opts := service.ListOptions{
		IncludeDrafts: c.Query("include_drafts") == "true",
		Source:        c.Query("source"),
		Order:         service.OrderByDateDesc,
	}
	if c.Query("order") == "day" {
		opts.Order = service.OrderByDayAsc
	}

	updates, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, 200, updates, gin.H{"count": len(updates)})
}

func (h *UpdateHandler) Get(c *gin.Context) {
	update, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, update)
}

func (h *UpdateHandler) Create(c *gin.Context) {
	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	update, err := h.service.Create(c.Request.Context(), req, targetFrom(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, update)
}

func (h *UpdateHandler) Replace(c *gin.Context) {
	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	update, err := h.service.Replace(c.Request.Context(), c.Param("id"), req, targetFrom(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, update)
}

func (h *UpdateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), targetFrom(c)); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, gin.H{"deleted": true})
}

func (h *UpdateHandler) Duplicate(c *gin.Context) {
	update, err := h.service.Duplicate(c.Request.Context(), c.Param("id"), targetFrom(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, update)
}

func (h *UpdateHandler) Import(c *gin.Context) {
	var req model.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	result, err := h.service.Import(c.Request.Context(), req, targetFrom(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, result)
}

func targetFrom(c *gin.Context) string {
	if c.Query("target") == service.TargetLocal {
		return service.TargetLocal
	}
	return service.TargetRemote
}

func (h *UpdateHandler) mapError(c *gin.Context, err error) {
	var domainErr *model.DomainError
	switch {
	case errors.Is(err, model.ErrUpdateNotFound):
		response.NotFound(c, model.ErrCodeUpdateNotFound, "update not found")
	case errors.As(err, &domainErr):
		response.UnprocessableEntity(c, domainErr.Code, domainErr.Error())
	default:
		response.InternalServerError(c, model.ErrCodeStorageFailure, "failed to process update")
	}
}
