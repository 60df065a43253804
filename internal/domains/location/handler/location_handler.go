package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"travelblog-backend/internal/domains/location/model"
	"travelblog-backend/internal/domains/location/service"
	"travelblog-backend/internal/shared/response"
)

type LocationHandler struct {
	service service.LocationService
}

func NewLocationHandler(s service.LocationService) *LocationHandler {
	return &LocationHandler{service: s}
}

// Extract handles POST /locations/extract.
func (h *LocationHandler) Extract(c *gin.Context) {
	var req model.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "invalid request body")
		return
	}

	coords, err := h.service.Extract(req)
	if err != nil {
		var validationErrs validation.Errors
		switch {
		case errors.Is(err, model.ErrLinkNotRecognized):
			response.UnprocessableEntity(c, model.ErrCodeLinkNotRecognized, "no coordinates found in link")
		case errors.As(err, &validationErrs):
			response.BadRequest(c, model.ErrCodeInvalidPayload, err.Error())
		default:
			response.InternalServerError(c, model.ErrCodeInvalidPayload, "failed to extract coordinates")
		}
		return
	}

	response.Success(c, 200, coords)
}

// Search handles GET /locations/search?q=.
// The upstream call carries the request context, so a client closing the
// admin search box cancels the geocode in flight.
func (h *LocationHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, model.ErrCodeInvalidPayload, "query parameter q is required")
		return
	}

	places, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing to answer.
			c.Abort()
			return
		}
		response.InternalServerError(c, model.ErrCodeSearchFailure, "location search failed")
		return
	}

	response.SuccessWithMeta(c, 200, places, gin.H{"count": len(places)})
}
