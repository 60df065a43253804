package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoInput_UnmarshalBareURL(t *testing.T) {
	var photo PhotoInput
	require.NoError(t, json.Unmarshal([]byte(`"https://cdn.example.com/a.jpg"`), &photo))

	assert.Equal(t, "https://cdn.example.com/a.jpg", photo.URL)
	assert.Empty(t, photo.ID)
}

func TestPhotoInput_UnmarshalObject(t *testing.T) {
	var photo PhotoInput
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p-1","url":"https://cdn.example.com/a.jpg"}`), &photo))

	assert.Equal(t, "p-1", photo.ID)
	assert.Equal(t, "https://cdn.example.com/a.jpg", photo.URL)
}

func TestPhotoInput_UnmarshalRejectsOtherTypes(t *testing.T) {
	var photo PhotoInput
	assert.Error(t, json.Unmarshal([]byte(`42`), &photo))
}

func TestUpdateRequest_Validate(t *testing.T) {
	valid := UpdateRequest{
		Day:         1,
		Title:       "Arrivée",
		Description: "Atterrissage à Keflavik.",
		Location:    LocationInput{Name: "Keflavik", Lat: 63.985, Lng: -22.605},
	}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	missingDescription := valid
	missingDescription.Description = ""
	assert.Error(t, missingDescription.Validate())

	zeroDay := valid
	zeroDay.Day = 0
	assert.Error(t, zeroDay.Validate())

	badStatus := valid
	badStatus.Status = "archived"
	assert.Error(t, badStatus.Validate())

	missingLocationName := valid
	missingLocationName.Location.Name = ""
	assert.Error(t, missingLocationName.Validate())

	latTooHigh := valid
	latTooHigh.Location.Lat = 90.5
	assert.Error(t, latTooHigh.Validate())

	lngTooLow := valid
	lngTooLow.Location.Lng = -180.5
	assert.Error(t, lngTooLow.Validate())
}

func TestUpdateRequest_ValidateSpots(t *testing.T) {
	req := UpdateRequest{
		Day:         2,
		Title:       "Côte sud",
		Description: "Cascades et plage noire.",
		Location:    LocationInput{Name: "Vik", Lat: 63.4187, Lng: -19.0060},
		Spots: []SpotInput{
			{Name: "", Day: 2, Lat: 63.5, Lng: -19.5},
		},
	}
	assert.Error(t, req.Validate())

	req.Spots[0].Name = "Seljalandsfoss"
	assert.NoError(t, req.Validate())
}

func TestUpdateRequest_AcceptsDateOnly(t *testing.T) {
	req := UpdateRequest{
		Day:         1,
		Date:        "2024-01-01",
		Title:       "Arrivée",
		Description: "Atterrissage à Keflavik.",
		Location:    LocationInput{Name: "Keflavik", Lat: 63.985, Lng: -22.605},
	}
	require.NoError(t, req.Validate())

	update := req.ToModel()
	assert.Equal(t, 2024, update.Date.Year())
	assert.Equal(t, time.January, update.Date.Month())
	assert.Equal(t, 1, update.Date.Day())
}

func TestUpdateRequest_AcceptsRFC3339Date(t *testing.T) {
	req := UpdateRequest{
		Day:         1,
		Date:        "2024-01-01T10:30:00Z",
		Title:       "Arrivée",
		Description: "Atterrissage.",
		Location:    LocationInput{Name: "Keflavik"},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, 10, req.ToModel().Date.Hour())
}

func TestUpdateRequest_RejectsMalformedDate(t *testing.T) {
	req := UpdateRequest{
		Day:         1,
		Date:        "01/01/2024",
		Title:       "Arrivée",
		Description: "Atterrissage.",
		Location:    LocationInput{Name: "Keflavik"},
	}
	assert.Error(t, req.Validate())
}

func TestUpdateRequest_ToModelDefaults(t *testing.T) {
	req := UpdateRequest{
		Day:         1,
		Title:       "Arrivée",
		Description: "Atterrissage.",
		Location:    LocationInput{Name: "Keflavik"},
	}

	update := req.ToModel()

	assert.Equal(t, StatusPublished, update.Status)
	assert.Empty(t, update.Photos)
	assert.Nil(t, update.Extras)
}
