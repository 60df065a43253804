package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ErrCodeLinkNotRecognized = "LOC001"
	ErrCodeInvalidPayload    = "LOC002"
	ErrCodeSearchFailure     = "LOC003"
)

// ErrLinkNotRecognized means no matcher family found coordinates in the
// pasted link. The caller's existing form fields stay untouched.
var ErrLinkNotRecognized = errors.New("no coordinates found in link")

// Coordinates is an extracted lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ExtractRequest carries a pasted map link.
type ExtractRequest struct {
	Link string `json:"link"`
}

func (r ExtractRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Link, validation.Required),
	)
}
