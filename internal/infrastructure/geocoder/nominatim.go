package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/config"
	"travelblog-backend/pkg/cache"
)

// Place is one forward-geocoding candidate.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Link string  `json:"link"`
}

// Geocoder resolves free-text place queries into coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

type nominatimGeocoder struct {
	cfg        config.GeocoderConfig
	httpClient *http.Client
	cache      cache.Cache
}

func NewNominatimGeocoder(cfg config.GeocoderConfig, c cache.Cache) Geocoder {
	return &nominatimGeocoder{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      c,
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
}

// Search queries Nominatim, serving repeated queries from the cache.
// The request carries the caller's context so an abandoned search in the
// admin form cancels the upstream call.
func (g *nominatimGeocoder) Search(ctx context.Context, query string) ([]Place, error) {
	cacheKey := "geocode:" + query

	var cached []Place
	if found, err := g.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("Geocode cache read failed, querying upstream")
	}

	endpoint := fmt.Sprintf("%s/search?%s", g.cfg.BaseURL, url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"5"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.cfg.UserAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		places = append(places, Place{
			Name: r.DisplayName,
			Lat:  lat,
			Lng:  lng,
			Link: fmt.Sprintf("https://www.openstreetmap.org/%s/%d", r.OsmType, r.OsmID),
		})
	}

	if err := g.cache.Set(ctx, cacheKey, places, g.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache geocode result")
	}

	return places, nil
}
