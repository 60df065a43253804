package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelblog-backend/internal/domains/update/model"
)

// fakeUpdateRepository is an in-memory UpdateRepository.
type fakeUpdateRepository struct {
	updates []model.TravelUpdate
	failAll bool
}

var errFakeDown = errors.New("store unavailable")

func (f *fakeUpdateRepository) List(ctx context.Context, includeDrafts bool) ([]model.TravelUpdate, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	var out []model.TravelUpdate
	for _, u := range f.updates {
		if !includeDrafts && !u.IsPublished() {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUpdateRepository) GetByID(ctx context.Context, id string) (*model.TravelUpdate, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	for i := range f.updates {
		if f.updates[i].ID == id {
			copied := f.updates[i]
			return &copied, nil
		}
	}
	return nil, model.ErrUpdateNotFound
}

func (f *fakeUpdateRepository) Create(ctx context.Context, update *model.TravelUpdate) error {
	if f.failAll {
		return errFakeDown
	}
	f.updates = append(f.updates, *update)
	return nil
}

func (f *fakeUpdateRepository) Replace(ctx context.Context, update *model.TravelUpdate) error {
	if f.failAll {
		return errFakeDown
	}
	for i := range f.updates {
		if f.updates[i].ID == update.ID {
			f.updates[i] = *update
			return nil
		}
	}
	return model.ErrUpdateNotFound
}

func (f *fakeUpdateRepository) Delete(ctx context.Context, id string) error {
	if f.failAll {
		return errFakeDown
	}
	for i := range f.updates {
		if f.updates[i].ID == id {
			f.updates = append(f.updates[:i], f.updates[i+1:]...)
			return nil
		}
	}
	return model.ErrUpdateNotFound
}

type fakeGalleryCleaner struct {
	deletedUpdateIDs []string
}

func (f *fakeGalleryCleaner) DeleteBySourceUpdate(ctx context.Context, updateID string) error {
	f.deletedUpdateIDs = append(f.deletedUpdateIDs, updateID)
	return nil
}

func newTestService() (UpdateService, *fakeUpdateRepository, *fakeUpdateRepository, *fakeGalleryCleaner) {
	remote := &fakeUpdateRepository{}
	local := &fakeUpdateRepository{}
	gallery := &fakeGalleryCleaner{}
	return NewUpdateService(remote, local, gallery, nil), remote, local, gallery
}

func validRequest() model.UpdateRequest {
	return model.UpdateRequest{
		Day:         3,
		Title:       "Reykjavik sous la pluie",
		Description: "Première vraie journée de marche dans la capitale.",
		Location: model.LocationInput{
			Name: "Reykjavik",
			Lat:  64.1466,
			Lng:  -21.9426,
		},
		Photos: []model.PhotoInput{{URL: "https://cdn.example.com/p1.jpg"}},
		Spots: []model.SpotInput{
			{Name: "Hallgrímskirkja", Day: 3, Lat: 64.142, Lng: -21.9266},
		},
		Extras: &model.ExtrasInput{
			MicroStory: "Le vent, toujours le vent.",
			Highlights: []string{"église", "café du port"},
		},
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	svc, remote, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validRequest(), TargetRemote)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	listed, err := svc.List(context.Background(), ListOptions{IncludeDrafts: true, Order: OrderByDayAsc})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Reykjavik", got.Location.Name)
	assert.InDelta(t, 64.1466, got.Location.Lat, 1e-9)
	assert.InDelta(t, -21.9426, got.Location.Lng, 1e-9)
	require.Len(t, got.Spots, 1)
	assert.Equal(t, "Hallgrímskirkja", got.Spots[0].Name)
	require.NotNil(t, got.Extras)
	assert.Equal(t, []string{"église", "café du port"}, got.Extras.Highlights)
	require.Len(t, got.Photos, 1)
	assert.Equal(t, created.ID, got.Photos[0].UpdateID)
	assert.NotEmpty(t, got.Photos[0].ID)

	assert.Len(t, remote.updates, 1)
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	svc, remote, _, _ := newTestService()

	req := validRequest()
	req.Day = 0
	_, err := svc.Create(context.Background(), req, TargetRemote)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidPayload, domainErr.Code)
	assert.Empty(t, remote.updates)
}

func TestCreate_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.Location.Lat = 91
	_, err := svc.Create(context.Background(), req, TargetRemote)
	require.Error(t, err)

	req = validRequest()
	req.Location.Lng = -181
	_, err = svc.Create(context.Background(), req, TargetRemote)
	require.Error(t, err)
}

func TestReplace_IsFullReplace(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.Photos = []model.PhotoInput{
		{URL: "https://cdn.example.com/p1.jpg"},
		{URL: "https://cdn.example.com/p2.jpg"},
	}
	created, err := svc.Create(context.Background(), req, TargetRemote)
	require.NoError(t, err)
	require.Len(t, created.Photos, 2)

	// Resubmit with only one photo: the omitted one must be gone.
	edit := validRequest()
	edit.Photos = []model.PhotoInput{{URL: "https://cdn.example.com/p2.jpg"}}
	replaced, err := svc.Replace(context.Background(), created.ID, edit, TargetRemote)
	require.NoError(t, err)

	require.Len(t, replaced.Photos, 1)
	assert.Equal(t, "https://cdn.example.com/p2.jpg", replaced.Photos[0].URL)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Photos, 1)
}

func TestDuplicate_Properties(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validRequest(), TargetRemote)
	require.NoError(t, err)

	clone, err := svc.Duplicate(context.Background(), created.ID, TargetRemote)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, clone.ID)
	assert.Equal(t, model.StatusDraft, clone.Status)
	assert.Equal(t, created.Title+DuplicateMarker, clone.Title)
	assert.Equal(t, created.Location, clone.Location)
	assert.Equal(t, created.Spots, clone.Spots)
	require.NotNil(t, clone.Extras)
	assert.Equal(t, created.Extras.Highlights, clone.Extras.Highlights)

	// Photos are cloned records pointing at the clone.
	require.Len(t, clone.Photos, len(created.Photos))
	assert.NotEqual(t, created.Photos[0].ID, clone.Photos[0].ID)
	assert.Equal(t, clone.ID, clone.Photos[0].UpdateID)
	assert.Equal(t, created.Photos[0].URL, clone.Photos[0].URL)
}

func TestDelete_CascadesToGallery(t *testing.T) {
	svc, remote, _, gallery := newTestService()

	created, err := svc.Create(context.Background(), validRequest(), TargetRemote)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, TargetRemote))

	assert.Empty(t, remote.updates)
	assert.Equal(t, []string{created.ID}, gallery.deletedUpdateIDs)

	listed, err := svc.List(context.Background(), ListOptions{IncludeDrafts: true})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestList_RemoteFailureFallsBackToLocal(t *testing.T) {
	svc, remote, local, _ := newTestService()
	remote.failAll = true
	local.updates = []model.TravelUpdate{{ID: "draft-1", Day: 1, Status: model.StatusDraft}}

	listed, err := svc.List(context.Background(), ListOptions{IncludeDrafts: true, Order: OrderByDayAsc})

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "draft-1", listed[0].ID)
}

func TestImport_NormalizesBarePhotoURLs(t *testing.T) {
	svc, remote, _, _ := newTestService()

	// One entry whose photos array holds a bare URL string.
	raw := `{"updates":[{
		"day": 2,
		"title": "Cercle d'or",
		"description": "Geysir et Gullfoss dans la même journée.",
		"location": {"name": "Geysir", "lat": 64.3104, "lng": -20.3024},
		"photos": ["https://cdn.example.com/geysir.jpg"]
	}]}`

	var req model.ImportRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	result, err := svc.Import(context.Background(), req, TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	require.Len(t, remote.updates, 1)
	imported := remote.updates[0]
	require.Len(t, imported.Photos, 1)
	assert.Equal(t, "https://cdn.example.com/geysir.jpg", imported.Photos[0].URL)
	assert.NotEmpty(t, imported.Photos[0].ID)
	assert.Equal(t, imported.ID, imported.Photos[0].UpdateID)
}

func TestImport_DateOnlyDocumentIntoLocalStore(t *testing.T) {
	svc, remote, local, _ := newTestService()

	// A minimal exported document: date-only date, one bare-URL photo,
	// imported into the local draft collection.
	raw := `{"updates":[{
		"date": "2024-01-01",
		"day": 1,
		"title": "Arrivée",
		"description": "Atterrissage à Keflavik.",
		"location": {"name": "Keflavik", "lat": 63.985, "lng": -22.605},
		"photos": ["https://cdn.example.com/arrivee.jpg"]
	}]}`

	var req model.ImportRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	result, err := svc.Import(context.Background(), req, TargetLocal)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	assert.Empty(t, remote.updates)
	require.Len(t, local.updates, 1)

	imported := local.updates[0]
	// The submitted date is kept, not replaced by the import time.
	assert.Equal(t, 2024, imported.Date.Year())
	assert.Equal(t, time.January, imported.Date.Month())
	assert.Equal(t, 1, imported.Date.Day())
	require.Len(t, imported.Photos, 1)
	assert.Equal(t, "https://cdn.example.com/arrivee.jpg", imported.Photos[0].URL)
}

func TestImport_RejectsBatchOnFirstInvalidEntry(t *testing.T) {
	svc, remote, _, _ := newTestService()

	good := validRequest()
	bad := validRequest()
	bad.Title = ""

	_, err := svc.Import(context.Background(), model.ImportRequest{
		Updates: []model.UpdateRequest{good, bad},
	}, TargetRemote)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeImportValidation, domainErr.Code)
	// Validation runs before any write: nothing persisted.
	assert.Empty(t, remote.updates)
}

func TestCreate_LocalTargetWritesDraftStore(t *testing.T) {
	svc, remote, local, _ := newTestService()

	_, err := svc.Create(context.Background(), validRequest(), TargetLocal)
	require.NoError(t, err)

	assert.Empty(t, remote.updates)
	assert.Len(t, local.updates, 1)
}
