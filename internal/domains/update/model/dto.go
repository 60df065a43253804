package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Accepted date layouts. Older exports carry date-only values
// ("2024-01-01"); the admin UI submits full RFC3339 timestamps.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return errors.New("date must be RFC3339 or YYYY-MM-DD")
	}
	return nil
}

// PhotoInput accepts either a full photo object or a bare URL string.
// Bulk imports from older exports carry photos as plain strings; they
// are normalized into photo records at the boundary.
type PhotoInput struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (p *PhotoInput) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		p.ID = ""
		p.URL = bare
		return nil
	}

	type photoInput PhotoInput
	var full photoInput
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("photo must be a URL string or an object: %w", err)
	}
	*p = PhotoInput(full)
	return nil
}

type LocationInput struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (l LocationInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&l.Lng, validation.Min(-180.0), validation.Max(180.0)),
	)
}

type SpotInput struct {
	ID          string  `json:"id"`
	Day         int     `json:"day"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

func (s SpotInput) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Day, validation.Min(1)),
		validation.Field(&s.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&s.Lng, validation.Min(-180.0), validation.Max(180.0)),
	)
}

type ExtrasInput struct {
	MicroStory string   `json:"micro_story"`
	Highlights []string `json:"highlights"`
}

// UpdateRequest is the payload for create, replace and import entries.
type UpdateRequest struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Day         int           `json:"day"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Location    LocationInput `json:"location"`
	Photos      []PhotoInput  `json:"photos"`
	Spots       []SpotInput   `json:"spots"`
	Extras      *ExtrasInput  `json:"extras"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Day, validation.Required, validation.Min(1)),
		validation.Field(&r.Date, validation.By(validDate)),
		validation.Field(&r.Status, validation.In(StatusDraft, StatusPublished)),
		validation.Field(&r.Location),
		validation.Field(&r.Spots),
	)
}

// ToModel converts a validated request into the domain model.
// Missing ids and dates are generated by the caller.
func (r UpdateRequest) ToModel() TravelUpdate {
	update := TravelUpdate{
		ID:          r.ID,
		Day:         r.Day,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Location: Location{
			Name: r.Location.Name,
			Lat:  r.Location.Lat,
			Lng:  r.Location.Lng,
		},
	}

	if r.Status == "" {
		update.Status = StatusPublished
	}

	// Validate ran first, so a non-empty date always parses here.
	if r.Date != "" {
		if parsed, err := parseDate(r.Date); err == nil {
			update.Date = parsed
		}
	}

	for _, p := range r.Photos {
		update.Photos = append(update.Photos, TravelPhoto{
			ID:  p.ID,
			URL: p.URL,
		})
	}

	for _, s := range r.Spots {
		update.Spots = append(update.Spots, TravelSpot{
			ID:          s.ID,
			Day:         s.Day,
			Name:        s.Name,
			Description: s.Description,
			Lat:         s.Lat,
			Lng:         s.Lng,
		})
	}

	if r.Extras != nil {
		update.Extras = &Extras{
			MicroStory: r.Extras.MicroStory,
			Highlights: r.Extras.Highlights,
		}
	}

	return update
}

// ImportRequest is the bulk-import payload.
type ImportRequest struct {
	Updates []UpdateRequest `json:"updates"`
}

func (r ImportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Updates, validation.Required),
	)
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}
