package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelblog-backend/internal/domains/gallery/model"
)

type fakeInteractionRepository struct {
	orphans  int
	sweepErr error
	swept    bool
}

func (f *fakeInteractionRepository) Like(ctx context.Context, photoID, fingerprint string) (int, bool, error) {
	return 0, false, nil
}

func (f *fakeInteractionRepository) ListComments(ctx context.Context, photoID string) ([]model.Comment, error) {
	return nil, nil
}

func (f *fakeInteractionRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return nil
}

func (f *fakeInteractionRepository) DeleteOrphanedUpdatePhotos(ctx context.Context) (int, error) {
	f.swept = true
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	return f.orphans, nil
}

func TestSweep_RemovesOrphans(t *testing.T) {
	repo := &fakeInteractionRepository{orphans: 3}
	handler := NewSweepHandler(repo)

	require.NoError(t, handler.HandleSweepOrphanedPhotos(context.Background(), NewSweepOrphanedPhotosTask()))
	assert.True(t, repo.swept)
}

func TestSweep_PropagatesErrorForRetry(t *testing.T) {
	repo := &fakeInteractionRepository{sweepErr: errors.New("operator does not exist")}
	handler := NewSweepHandler(repo)

	// A failed sweep must surface the error so the task is retried.
	err := handler.HandleSweepOrphanedPhotos(context.Background(), NewSweepOrphanedPhotosTask())
	assert.Error(t, err)
}
