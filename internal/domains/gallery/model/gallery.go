package model

import "time"

// Photo source values: photos either come from a travel update or were
// added to the gallery directly.
const (
	SourceUpdate  = "update"
	SourceGallery = "gallery"
)

// GalleryPhoto is one entry of the public photo gallery.
type GalleryPhoto struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
	UpdateID    string    `json:"update_id,omitempty"`
	UpdateDay   int       `json:"update_day,omitempty"`
	UpdateTitle string    `json:"update_title,omitempty"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Comment is a visitor comment on a gallery photo.
type Comment struct {
	ID        string    `json:"id"`
	PhotoID   string    `json:"photo_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
