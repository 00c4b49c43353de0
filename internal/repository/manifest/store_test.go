package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronemap/internal/logger"
	"dronemap/internal/model"
	"dronemap/internal/repository"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	s, err := Open(path, logger.NewNop())
	require.NoError(t, err)
	return s, path
}

func record(id, name string, kind model.MediaKind, lat, lon float64, created time.Time) *model.MediaRecord {
	return &model.MediaRecord{
		ID:          id,
		Name:        name,
		Kind:        kind,
		StoragePath: "media/" + name,
		Latitude:    lat,
		Longitude:   lon,
		ProjectID:   model.DefaultProjectID,
		CreatedAt:   created,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s, path := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	_, err := s.Create(ctx, record("a", "a.jpg", model.KindImage, 37.0, -122.0, base))
	require.NoError(t, err)
	_, err = s.Create(ctx, record("b", "b.mp4", model.KindVideo, 37.0001, -122.0001, base.Add(time.Minute)))
	require.NoError(t, err)

	before, err := s.List(ctx, repository.ListQuery{})
	require.NoError(t, err)

	// A fresh store over the same document must yield an identical
	// collection, order and fields included.
	reopened, err := Open(path, logger.NewNop())
	require.NoError(t, err)
	after, err := reopened.List(ctx, repository.ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestStore_MissingAndCorruptDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("missing starts empty", func(t *testing.T) {
		s, _ := testStore(t)
		records, err := s.List(ctx, repository.ListQuery{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("corrupt starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

		s, err := Open(path, logger.NewNop())
		require.NoError(t, err)
		records, err := s.List(ctx, repository.ListQuery{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore_FlushIsAtomic(t *testing.T) {
	s, path := testStore(t)
	ctx := context.Background()

	for i, name := range []string{"one.jpg", "two.jpg", "three.mp4"} {
		_, err := s.Create(ctx, record(name, name, model.KindImage, float64(i), float64(i), time.Now().UTC()))
		require.NoError(t, err)

		// After every mutation the document on disk is complete valid
		// JSON and no temp file is left behind.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Contains(t, doc, "mediaItems")
		assert.Contains(t, doc, "lastUpdated")

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}
}

func TestStore_Delete(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, record("a", "a.jpg", model.KindImage, 1, 2, time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "a"))

	records, err := s.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, records)

	// Repeated delete of the same id reports the miss instead of
	// silently succeeding.
	err = s.Delete(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_FindByID(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, record("a", "a.jpg", model.KindImage, 1, 2, time.Now().UTC()))
	require.NoError(t, err)

	rec, err := s.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", rec.Name)

	_, err = s.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ListFilters(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	_, err := s.Create(ctx, record("1", "Beach.jpg", model.KindImage, 1, 1, base))
	require.NoError(t, err)
	_, err = s.Create(ctx, record("2", "cliff.mp4", model.KindVideo, 2, 2, base.Add(time.Minute)))
	require.NoError(t, err)
	other := record("3", "beachfront.mp4", model.KindVideo, 3, 3, base.Add(2*time.Minute))
	other.ProjectID = "project-x"
	_, err = s.Create(ctx, other)
	require.NoError(t, err)

	t.Run("by kind", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{Kind: model.KindVideo})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "2", out[0].ID)
	})

	t.Run("by project", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{ProjectID: "project-x"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "3", out[0].ID)
	})

	t.Run("by name, case-insensitive", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{NameContains: "BEACH"})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "1", out[0].ID)
		assert.Equal(t, "3", out[1].ID)
	})
}

func TestStore_ListSorting(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	// "b" and "c" share a timestamp; insertion order must break the tie.
	_, err := s.Create(ctx, record("b", "Banana.jpg", model.KindImage, 1, 1, base))
	require.NoError(t, err)
	_, err = s.Create(ctx, record("c", "apple.jpg", model.KindImage, 2, 2, base))
	require.NoError(t, err)
	_, err = s.Create(ctx, record("a", "Cherry.jpg", model.KindImage, 3, 3, base.Add(-time.Hour)))
	require.NoError(t, err)

	t.Run("created_at asc with stable ties", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{SortBy: repository.SortByCreatedAt})
		require.NoError(t, err)
		ids := []string{out[0].ID, out[1].ID, out[2].ID}
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("name asc is case-insensitive", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{SortBy: repository.SortByName})
		require.NoError(t, err)
		names := []string{out[0].Name, out[1].Name, out[2].Name}
		assert.Equal(t, []string{"apple.jpg", "Banana.jpg", "Cherry.jpg"}, names)
	})

	t.Run("name desc", func(t *testing.T) {
		out, err := s.List(ctx, repository.ListQuery{SortBy: repository.SortByName, Order: repository.OrderDesc})
		require.NoError(t, err)
		assert.Equal(t, "Cherry.jpg", out[0].Name)
	})
}

func TestStore_CountByProject(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, record("1", "a.jpg", model.KindImage, 1, 1, time.Now().UTC()))
	require.NoError(t, err)

	n, err := s.CountByProject(ctx, model.DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountByProject(ctx, "project-x")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
