package model

import "time"

// Update status values. New entries default to published; duplicates
// start as drafts so they can be reworked before going live.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Location is a named geographic point.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// TravelPhoto is a stored photo attached to an update. Photos carry
// their own identity; they are rows, not bare URLs.
type TravelPhoto struct {
	ID        string    `json:"id"`
	UpdateID  string    `json:"update_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// TravelSpot is a waypoint visited during a day.
type TravelSpot struct {
	ID          string  `json:"id"`
	Day         int     `json:"day"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Extras holds the optional editorial content of an update.
type Extras struct {
	MicroStory string   `json:"micro_story"`
	Highlights []string `json:"highlights"`
}

// TravelUpdate is one day-by-day diary entry of the trip.
type TravelUpdate struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Day         int           `json:"day"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Location    Location      `json:"location"`
	Photos      []TravelPhoto `json:"photos"`
	Spots       []TravelSpot  `json:"spots"`
	Extras      *Extras       `json:"extras,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// IsPublished reports whether the update is visible on the public site.
func (u *TravelUpdate) IsPublished() bool {
	return u.Status == StatusPublished
}
