package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"travelblog-backend/internal/domains/update/model"
)

func day(n int, date string) model.TravelUpdate {
	parsed, _ := time.Parse("2006-01-02", date)
	return model.TravelUpdate{
		ID:   date + "-day",
		Day:  n,
		Date: parsed,
	}
}

func TestMergeRemoteAndLocal_Length(t *testing.T) {
	remote := []model.TravelUpdate{day(1, "2026-07-01"), day(2, "2026-07-02")}
	local := []model.TravelUpdate{day(3, "2026-07-03")}

	merged := MergeRemoteAndLocal(remote, local, OrderByDayAsc)

	assert.Len(t, merged, len(remote)+len(local))
}

func TestMergeRemoteAndLocal_DayAscending(t *testing.T) {
	remote := []model.TravelUpdate{day(5, "2026-07-05"), day(1, "2026-07-01")}
	local := []model.TravelUpdate{day(3, "2026-07-03")}

	merged := MergeRemoteAndLocal(remote, local, OrderByDayAsc)

	assert.Equal(t, []int{1, 3, 5}, []int{merged[0].Day, merged[1].Day, merged[2].Day})
}

func TestMergeRemoteAndLocal_DateDescending(t *testing.T) {
	remote := []model.TravelUpdate{day(1, "2026-07-01")}
	local := []model.TravelUpdate{day(3, "2026-07-03"), day(2, "2026-07-02")}

	merged := MergeRemoteAndLocal(remote, local, OrderByDateDesc)

	assert.Equal(t, 3, merged[0].Day)
	assert.Equal(t, 2, merged[1].Day)
	assert.Equal(t, 1, merged[2].Day)
}

func TestMergeRemoteAndLocal_NoDedup(t *testing.T) {
	shared := day(2, "2026-07-02")
	shared.ID = "same-id"

	remoteCopy := shared
	remoteCopy.Title = "remote"
	localCopy := shared
	localCopy.Title = "local"

	merged := MergeRemoteAndLocal(
		[]model.TravelUpdate{remoteCopy},
		[]model.TravelUpdate{localCopy},
		OrderByDayAsc,
	)

	// Same id twice: the merge never deduplicates.
	assert.Len(t, merged, 2)
	assert.Equal(t, "same-id", merged[0].ID)
	assert.Equal(t, "same-id", merged[1].ID)
}

func TestMergeRemoteAndLocal_StableTieBreak(t *testing.T) {
	remote := []model.TravelUpdate{day(2, "2026-07-02")}
	remote[0].Title = "remote"
	local := []model.TravelUpdate{day(2, "2026-07-02")}
	local[0].Title = "local"

	merged := MergeRemoteAndLocal(remote, local, OrderByDayAsc)

	// Equal sort keys keep the pre-sort order: remote block first.
	assert.Equal(t, "remote", merged[0].Title)
	assert.Equal(t, "local", merged[1].Title)
}

func TestMergeRemoteAndLocal_EmptyRemote(t *testing.T) {
	local := []model.TravelUpdate{day(4, "2026-07-04"), day(1, "2026-07-01")}

	merged := MergeRemoteAndLocal(nil, local, OrderByDayAsc)

	assert.Len(t, merged, 2)
	assert.Equal(t, 1, merged[0].Day)
}
