package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Accepted date layouts, matching the update import: RFC3339 or
// date-only values from older exports.
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

// PhotoRequest is one photo in a batch insert.
type PhotoRequest struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Source      string `json:"source"`
	UpdateID    string `json:"update_id"`
	UpdateDay   int    `json:"update_day"`
	UpdateTitle string `json:"update_title"`
}

func (r PhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Source, validation.In(SourceUpdate, SourceGallery)),
		validation.Field(&r.Date, validation.By(validDate)),
	)
}

func (r PhotoRequest) ToModel() GalleryPhoto {
	photo := GalleryPhoto{
		ID:          r.ID,
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		Source:      r.Source,
		UpdateID:    r.UpdateID,
		UpdateDay:   r.UpdateDay,
		UpdateTitle: r.UpdateTitle,
	}
	if photo.Source == "" {
		photo.Source = SourceGallery
	}
	if r.Date != "" {
		if parsed, err := parseDate(r.Date); err == nil {
			photo.Date = parsed
		}
	}
	return photo
}

// CreatePhotosRequest is the batch insert payload.
type CreatePhotosRequest struct {
	Photos []PhotoRequest `json:"photos"`
}

func (r CreatePhotosRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Photos, validation.Required),
	)
}

// CommentRequest is a new visitor comment.
type CommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Author, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 1000)),
	)
}
