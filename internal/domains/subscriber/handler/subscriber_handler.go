package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"travelblog-backend/internal/domains/subscriber/model"
	"travelblog-backend/internal/domains/subscriber/service"
	"travelblog-backend/internal/shared/response"
)

type SubscriberHandler struct {
	service service.SubscriberService
}

func NewSubscriberHandler(s service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{service: s}
}

func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	subscriber, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 201, subscriber)
}

func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	if err := h.service.Unsubscribe(c.Request.Context(), c.Param("email")); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 200, gin.H{"unsubscribed": true})
}

func (h *SubscriberHandler) List(c *gin.Context) {
	subscribers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, subscribers, gin.H{"count": len(subscribers)})
}

func (h *SubscriberHandler) SendTestEmail(c *gin.Context) {
	var req model.TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	if err := h.service.SendTestEmail(c.Request.Context(), req); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, 202, gin.H{"queued": true})
}

func (h *SubscriberHandler) mapError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, model.ErrSubscriberNotFound):
		response.NotFound(c, model.ErrCodeSubscriberNotFound, "subscriber not found")
	case errors.Is(err, model.ErrAlreadySubscribed):
		response.Error(c, 409, model.ErrCodeAlreadySubscribed, "email already subscribed")
	case errors.As(err, &validationErrs):
		response.UnprocessableEntity(c, model.ErrCodeInvalidPayload, err.Error())
	default:
		response.InternalServerError(c, model.ErrCodeStorageFailure, "failed to process subscriber request")
	}
}
