package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"dronemap/internal/logger"
	"dronemap/internal/model"
	"dronemap/internal/repository"
)

// document is the on-disk shape of the manifest. Media items keep their
// insertion order; grouping entities are keyed by id.
type document struct {
	MediaItems    []model.MediaRecord           `json:"mediaItems"`
	Projects      map[string]model.Project      `json:"projects,omitempty"`
	Organizations map[string]model.Organization `json:"organizations,omitempty"`
	LastUpdated   string                        `json:"lastUpdated"`
}

// Store implements repository.MediaRepository and
// repository.GroupingRepository on top of a single JSON document.
//
// Every mutation rewrites the whole document through a temp file +
// rename in the manifest's directory, so a crash mid-write never leaves
// a truncated manifest behind. One mutex guards each mutate-then-flush
// sequence, which makes mutations appear atomic to concurrent reads.
type Store struct {
	path string
	log  *logger.Logger

	mu       sync.Mutex
	media    []model.MediaRecord
	projects map[string]model.Project
	orgs     map[string]model.Organization
}

var (
	_ repository.MediaRepository    = (*Store)(nil)
	_ repository.GroupingRepository = (*Store)(nil)
)

// Open loads the manifest at path. A missing or unreadable document
// yields an empty store rather than an error: the manifest is derived
// state and the application must come up regardless.
func Open(path string, log *logger.Logger) (*Store, error) {
	s := &Store{
		path:     path,
		log:      log,
		projects: make(map[string]model.Project),
		orgs:     make(map[string]model.Organization),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("manifest unreadable, starting empty", "path", path, "error", err)
		}
		return s, nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn("manifest corrupt, starting empty", "path", path, "error", err)
		return s, nil
	}

	s.media = doc.MediaItems
	if doc.Projects != nil {
		s.projects = doc.Projects
	}
	if doc.Organizations != nil {
		s.orgs = doc.Organizations
	}
	log.Info("manifest loaded", "path", path, "media", len(s.media),
		"projects", len(s.projects), "organizations", len(s.orgs))
	return s, nil
}

// flushLocked rewrites the document. Callers must hold s.mu.
func (s *Store) flushLocked() error {
	doc := document{
		MediaItems:    s.media,
		Projects:      s.projects,
		Organizations: s.orgs,
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
	}
	if doc.MediaItems == nil {
		doc.MediaItems = []model.MediaRecord{}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp manifest: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Create appends a record and flushes.
func (s *Store) Create(ctx context.Context, rec *model.MediaRecord) (*model.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.media = append(s.media, *rec)
	if err := s.flushLocked(); err != nil {
		// Roll back the append so memory matches disk.
		s.media = s.media[:len(s.media)-1]
		return nil, err
	}
	stored := s.media[len(s.media)-1]
	return &stored, nil
}

// FindByID returns a copy of the record with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (*model.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.media {
		if s.media[i].ID == id {
			rec := s.media[i]
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List filters and orders the collection. The returned slice is a copy;
// callers may hold it as a viewer snapshot.
func (s *Store) List(ctx context.Context, q repository.ListQuery) ([]model.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.MediaRecord, 0, len(s.media))
	needle := strings.ToLower(q.NameContains)
	for _, rec := range s.media {
		if q.Kind != "" && rec.Kind != q.Kind {
			continue
		}
		if q.ProjectID != "" && rec.ProjectID != q.ProjectID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.Name), needle) {
			continue
		}
		out = append(out, rec)
	}

	desc := q.Order == repository.OrderDesc
	switch q.SortBy {
	case repository.SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
			if desc {
				return a > b
			}
			return a < b
		})
	default:
		// Creation time; insertion order already breaks ties since the
		// slice is stable-sorted in stored order.
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out, nil
}

// Delete removes a record by id and flushes.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.media {
		if s.media[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}

	removed := s.media[idx]
	s.media = append(s.media[:idx:idx], s.media[idx+1:]...)
	if err := s.flushLocked(); err != nil {
		// Restore at the original position so memory matches disk.
		s.media = append(s.media[:idx], append([]model.MediaRecord{removed}, s.media[idx:]...)...)
		return err
	}
	return nil
}

// CountByProject returns how many records reference the project.
func (s *Store) CountByProject(ctx context.Context, projectID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.media {
		if s.media[i].ProjectID == projectID {
			n++
		}
	}
	return n, nil
}
