package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelblog-backend/internal/domains/gallery/model"
)

type fakeGalleryRepository struct {
	photos  []model.GalleryPhoto
	failAll bool
}

func (f *fakeGalleryRepository) List(ctx context.Context) ([]model.GalleryPhoto, error) {
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	return append([]model.GalleryPhoto(nil), f.photos...), nil
}

func (f *fakeGalleryRepository) CreateBatch(ctx context.Context, photos []model.GalleryPhoto) error {
	if f.failAll {
		return errors.New("store unavailable")
	}
	f.photos = append(f.photos, photos...)
	return nil
}

func (f *fakeGalleryRepository) Delete(ctx context.Context, id string) error {
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return model.ErrPhotoNotFound
}

func (f *fakeGalleryRepository) DeleteBySourceUpdate(ctx context.Context, updateID string) error {
	var kept []model.GalleryPhoto
	for _, p := range f.photos {
		if p.Source == model.SourceUpdate && p.UpdateID == updateID {
			continue
		}
		kept = append(kept, p)
	}
	f.photos = kept
	return nil
}

// fakeInteractions keeps likes per photo+fingerprint, mirroring the
// toggle semantics of the remote store.
type fakeInteractions struct {
	likes map[string]map[string]bool
}

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{likes: map[string]map[string]bool{}}
}

func (f *fakeInteractions) Like(ctx context.Context, photoID, fingerprint string) (int, bool, error) {
	if f.likes[photoID] == nil {
		f.likes[photoID] = map[string]bool{}
	}
	if f.likes[photoID][fingerprint] {
		delete(f.likes[photoID], fingerprint)
		return len(f.likes[photoID]), false, nil
	}
	f.likes[photoID][fingerprint] = true
	return len(f.likes[photoID]), true, nil
}

func (f *fakeInteractions) ListComments(ctx context.Context, photoID string) ([]model.Comment, error) {
	return nil, nil
}

func (f *fakeInteractions) CreateComment(ctx context.Context, comment *model.Comment) error {
	return nil
}

func (f *fakeInteractions) DeleteOrphanedUpdatePhotos(ctx context.Context) (int, error) {
	return 0, nil
}

func photoAt(id, date string) model.GalleryPhoto {
	parsed, _ := time.Parse("2006-01-02", date)
	return model.GalleryPhoto{ID: id, URL: "https://cdn.example.com/" + id + ".jpg", Date: parsed}
}

func TestGalleryList_MergedNewestFirst(t *testing.T) {
	remote := &fakeGalleryRepository{photos: []model.GalleryPhoto{photoAt("r1", "2026-07-01")}}
	local := &fakeGalleryRepository{photos: []model.GalleryPhoto{photoAt("l1", "2026-07-03"), photoAt("l2", "2026-07-02")}}
	svc := NewGalleryService(remote, local, nil)

	photos, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, photos, 3)
	assert.Equal(t, "l1", photos[0].ID)
	assert.Equal(t, "l2", photos[1].ID)
	assert.Equal(t, "r1", photos[2].ID)
}

func TestGalleryList_RemoteFailureFallsBackToLocal(t *testing.T) {
	remote := &fakeGalleryRepository{failAll: true}
	local := &fakeGalleryRepository{photos: []model.GalleryPhoto{photoAt("l1", "2026-07-03")}}
	svc := NewGalleryService(remote, local, nil)

	photos, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "l1", photos[0].ID)
}

func TestGalleryCreateBatch_FillsIdentity(t *testing.T) {
	remote := &fakeGalleryRepository{}
	svc := NewGalleryService(remote, &fakeGalleryRepository{}, nil)

	photos, err := svc.CreateBatch(context.Background(), model.CreatePhotosRequest{
		Photos: []model.PhotoRequest{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", Source: model.SourceUpdate, UpdateID: "u1", UpdateDay: 4},
		},
	}, "")
	require.NoError(t, err)

	require.Len(t, photos, 2)
	assert.NotEmpty(t, photos[0].ID)
	assert.Equal(t, model.SourceGallery, photos[0].Source)
	assert.Equal(t, model.SourceUpdate, photos[1].Source)
	assert.Equal(t, "u1", photos[1].UpdateID)
	assert.Len(t, remote.photos, 2)
}

func TestGalleryCreateBatch_RejectsInvalidURL(t *testing.T) {
	remote := &fakeGalleryRepository{}
	svc := NewGalleryService(remote, &fakeGalleryRepository{}, nil)

	_, err := svc.CreateBatch(context.Background(), model.CreatePhotosRequest{
		Photos: []model.PhotoRequest{{URL: "not a url"}},
	}, "")

	require.Error(t, err)
	assert.Empty(t, remote.photos)
}

func TestGalleryLike_TogglesPerVisitor(t *testing.T) {
	svc := NewGalleryService(&fakeGalleryRepository{}, &fakeGalleryRepository{}, newFakeInteractions())
	ctx := context.Background()

	likes, liked, err := svc.Like(ctx, "p1", "visitor-a")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes)

	// Same visitor again: the like toggles off, it does not pile up.
	likes, liked, err = svc.Like(ctx, "p1", "visitor-a")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likes)

	// Distinct visitors each count once.
	_, _, err = svc.Like(ctx, "p1", "visitor-a")
	require.NoError(t, err)
	likes, liked, err = svc.Like(ctx, "p1", "visitor-b")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, likes)
}

func TestGalleryDeleteBySourceUpdate_BothStores(t *testing.T) {
	remote := &fakeGalleryRepository{photos: []model.GalleryPhoto{
		{ID: "r1", Source: model.SourceUpdate, UpdateID: "u1"},
		{ID: "r2", Source: model.SourceGallery},
	}}
	local := &fakeGalleryRepository{photos: []model.GalleryPhoto{
		{ID: "l1", Source: model.SourceUpdate, UpdateID: "u1"},
	}}
	svc := NewGalleryService(remote, local, nil)

	require.NoError(t, svc.DeleteBySourceUpdate(context.Background(), "u1"))

	require.Len(t, remote.photos, 1)
	assert.Equal(t, "r2", remote.photos[0].ID)
	assert.Empty(t, local.photos)
}
