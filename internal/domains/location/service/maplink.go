package service

import (
	"regexp"
	"strconv"

	"travelblog-backend/internal/domains/location/model"
)

// Matcher families for pasted map links, tried in order. The first
// family that yields an in-range coordinate pair wins.
//
//	@lat,lng            Google Maps viewport ("/@64.14,-21.94,17z")
//	?q=lat,lng          Google Maps query parameter
//	/place/.../@lat,lng Google Maps place URLs
//	#map=zoom/lat/lng   OpenStreetMap fragment
//	mlat=&mlon=         OpenStreetMap marker parameters
var linkMatchers = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`),
	regexp.MustCompile(`[?&]q=(-?\d+\.?\d*),(-?\d+\.?\d*)`),
	regexp.MustCompile(`/place/[^/]+/@(-?\d+\.?\d*),(-?\d+\.?\d*)`),
	regexp.MustCompile(`#map=\d+/(-?\d+\.?\d*)/(-?\d+\.?\d*)`),
	regexp.MustCompile(`mlat=(-?\d+\.?\d*)&mlon=(-?\d+\.?\d*)`),
}

// ExtractCoordinates pulls a lat/lng pair out of a pasted map link.
// Returns ErrLinkNotRecognized when no family matches; the caller must
// leave any previously entered coordinates as they are.
func ExtractCoordinates(link string) (*model.Coordinates, error) {
	for _, matcher := range linkMatchers {
		groups := matcher.FindStringSubmatch(link)
		if groups == nil {
			continue
		}

		lat, errLat := strconv.ParseFloat(groups[1], 64)
		lng, errLng := strconv.ParseFloat(groups[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			continue
		}

		return &model.Coordinates{Lat: lat, Lng: lng}, nil
	}

	return nil, model.ErrLinkNotRecognized
}
