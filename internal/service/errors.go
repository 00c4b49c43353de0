package service

import "errors"

var (
	// ErrReaderNil rejects uploads with no payload stream.
	ErrReaderNil = errors.New("reader is nil")
	// ErrUnsupportedFormat rejects uploads whose extension maps to
	// neither an image nor a video format. User-correctable.
	ErrUnsupportedFormat = errors.New("unsupported media format")
	// ErrInvalidCoordinate rejects latitudes outside [-90, 90] or
	// longitudes outside [-180, 180] before anything is persisted.
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	// ErrIDRequired rejects lookups and deletes with an empty id.
	ErrIDRequired = errors.New("id is required")
	// ErrNotFound reports a missing record, project or organization.
	ErrNotFound = errors.New("media record not found")
	// ErrNameRequired rejects grouping entities with an empty name.
	ErrNameRequired = errors.New("name is required")
	// ErrUnknownOrganization rejects projects referencing an
	// organization that does not exist.
	ErrUnknownOrganization = errors.New("unknown organization")
	// ErrUnknownProject rejects uploads referencing a project that does
	// not exist.
	ErrUnknownProject = errors.New("unknown project")
	// ErrHasDependents blocks deletion of grouping entities that still
	// have children; callers must reassign or delete children first.
	ErrHasDependents = errors.New("entity has dependents")
	// ErrDefaultImmutable blocks deletion of the auto-created default
	// organization and project, which must always exist.
	ErrDefaultImmutable = errors.New("default grouping entities cannot be deleted")
)
