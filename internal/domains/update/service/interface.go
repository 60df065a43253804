package service

import (
	"context"

	"travelblog-backend/internal/domains/update/model"
)

// Target selects which store an authoring operation writes to.
const (
	TargetRemote = "remote"
	TargetLocal  = "local"
)

// ListOptions controls the read path.
type ListOptions struct {
	// IncludeDrafts exposes draft entries (admin surface only).
	IncludeDrafts bool
	// Source limits the read to one store; empty means merged.
	Source string
	// Order is the sort applied to the merged list.
	Order MergeOrder
}

// UpdateService is the authoring and read surface for travel updates.
type UpdateService interface {
	List(ctx context.Context, opts ListOptions) ([]model.TravelUpdate, error)
	Get(ctx context.Context, id string) (*model.TravelUpdate, error)
	Create(ctx context.Context, req model.UpdateRequest, target string) (*model.TravelUpdate, error)
	Replace(ctx context.Context, id string, req model.UpdateRequest, target string) (*model.TravelUpdate, error)
	Delete(ctx context.Context, id, target string) error
	Duplicate(ctx context.Context, id, target string) (*model.TravelUpdate, error)
	Import(ctx context.Context, req model.ImportRequest, target string) (*model.ImportResult, error)
}
