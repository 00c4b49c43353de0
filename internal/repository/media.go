package repository

import (
	"context"
	"errors"

	"dronemap/internal/model"
)

// ErrNotFound is returned by lookups and deletes when no record with
// the given id exists.
var ErrNotFound = errors.New("record not found")

// SortField selects the list ordering key.
type SortField string

// SortOrder selects the list ordering direction.
type SortOrder string

const (
	SortByCreatedAt SortField = "created_at"
	SortByName      SortField = "name"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQuery narrows and orders a media listing. Zero values mean "no
// filter" and the default ordering (creation time, ascending, ties kept
// in insertion order).
type ListQuery struct {
	Kind         model.MediaKind
	ProjectID    string
	NameContains string
	SortBy       SortField
	Order        SortOrder
}

// MediaRepository defines persistence for media records. No business
// logic here — validation and payload handling belong to the service.
type MediaRepository interface {
	// Create appends a new record and flushes the backing document.
	Create(ctx context.Context, rec *model.MediaRecord) (*model.MediaRecord, error)

	// FindByID returns a record by its id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.MediaRecord, error)

	// List returns records matching the query in the requested order.
	List(ctx context.Context, q ListQuery) ([]model.MediaRecord, error)

	// Delete removes a record by id and flushes. Returns ErrNotFound
	// when the id is absent.
	Delete(ctx context.Context, id string) error

	// CountByProject returns how many records reference the project.
	CountByProject(ctx context.Context, projectID string) (int, error)
}
