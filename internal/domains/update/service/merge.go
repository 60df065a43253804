package service

import (
	"sort"

	"travelblog-backend/internal/domains/update/model"
)

// MergeOrder selects the sort applied after merging.
type MergeOrder int

const (
	// OrderByDayAsc is the admin ordering (trip chronology).
	OrderByDayAsc MergeOrder = iota
	// OrderByDateDesc is the public ordering (newest first).
	OrderByDateDesc
)

// MergeRemoteAndLocal combines the remote store's updates with the local
// draft store's updates into one list.
//
// The merge is a plain concatenation, remote block first, then a stable
// sort. Updates are NOT deduplicated: an entry present in both stores
// appears twice, and within equal sort keys the remote copy keeps its
// place ahead of the local one.
func MergeRemoteAndLocal(remote, local []model.TravelUpdate, order MergeOrder) []model.TravelUpdate {
	merged := make([]model.TravelUpdate, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	merged = append(merged, local...)

	switch order {
	case OrderByDayAsc:
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Day < merged[j].Day
		})
	case OrderByDateDesc:
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Date.After(merged[j].Date)
		})
	}

	return merged
}
