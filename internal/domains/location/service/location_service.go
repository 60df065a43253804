package service

import (
	"context"
	"strings"

	"travelblog-backend/internal/domains/location/model"
	"travelblog-backend/internal/infrastructure/geocoder"
)

// LocationService resolves pasted links and free-text place searches.
type LocationService interface {
	Extract(req model.ExtractRequest) (*model.Coordinates, error)
	Search(ctx context.Context, query string) ([]geocoder.Place, error)
}

type locationService struct {
	geocoder geocoder.Geocoder
}

func NewLocationService(g geocoder.Geocoder) LocationService {
	return &locationService{geocoder: g}
}

func (s *locationService) Extract(req model.ExtractRequest) (*model.Coordinates, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return ExtractCoordinates(strings.TrimSpace(req.Link))
}

func (s *locationService) Search(ctx context.Context, query string) ([]geocoder.Place, error) {
	return s.geocoder.Search(ctx, strings.TrimSpace(query))
}
