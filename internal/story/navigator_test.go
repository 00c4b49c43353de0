package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronemap/internal/model"
)

func records(ids ...string) []model.MediaRecord {
	out := make([]model.MediaRecord, len(ids))
	for i, id := range ids {
		out[i] = model.MediaRecord{ID: id}
	}
	return out
}

func TestNavigator_OpenClampsStartIndex(t *testing.T) {
	var n Navigator

	require.NoError(t, n.Open(records("a", "b", "c"), 99))
	assert.Equal(t, 2, n.Index())

	require.NoError(t, n.Open(records("a", "b", "c"), -5))
	assert.Equal(t, 0, n.Index())
}

func TestNavigator_OpenEmptySet(t *testing.T) {
	var n Navigator
	assert.ErrorIs(t, n.Open(nil, 0), ErrEmptySet)
	assert.False(t, n.IsOpen())
}

func TestNavigator_ClampAtEdges(t *testing.T) {
	var n Navigator
	require.NoError(t, n.Open(records("a", "b", "c", "d"), 0))

	// Previous N times stays pinned at 0; one Next then lands on 1.
	for i := 0; i < 4; i++ {
		n.Previous()
	}
	assert.Equal(t, 0, n.Index())
	n.Next()
	assert.Equal(t, 1, n.Index())

	for i := 0; i < 10; i++ {
		n.Next()
	}
	assert.Equal(t, 3, n.Index())
}

func TestNavigator_WrapMode(t *testing.T) {
	n := Navigator{Wrap: true}
	require.NoError(t, n.Open(records("a", "b", "c"), 2))

	n.Next()
	assert.Equal(t, 0, n.Index())
	n.Previous()
	assert.Equal(t, 2, n.Index())
}

func TestNavigator_JumpTo(t *testing.T) {
	var n Navigator
	require.NoError(t, n.Open(records("a", "b", "c"), 0))

	require.NoError(t, n.JumpTo(2))
	assert.Equal(t, 2, n.Index())

	// len(set) is one past the valid range.
	assert.ErrorIs(t, n.JumpTo(3), ErrOutOfRange)
	assert.ErrorIs(t, n.JumpTo(-1), ErrOutOfRange)
	// A failed jump leaves the cursor where it was.
	assert.Equal(t, 2, n.Index())
}

func TestNavigator_Current(t *testing.T) {
	var n Navigator

	_, err := n.Current()
	assert.ErrorIs(t, err, ErrEmptySet)

	require.NoError(t, n.Open(records("a", "b"), 1))
	rec, err := n.Current()
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)
}

func TestNavigator_Close(t *testing.T) {
	var n Navigator
	require.NoError(t, n.Open(records("a", "b"), 1))

	n.Close()
	assert.False(t, n.IsOpen())
	assert.Equal(t, 0, n.Index())
	_, err := n.Current()
	assert.ErrorIs(t, err, ErrEmptySet)
	assert.ErrorIs(t, n.JumpTo(0), ErrEmptySet)
}

// The active set is a snapshot: whatever happens to the source slice's
// backing store afterwards, an open session keeps serving the records
// it was opened with.
func TestNavigator_SnapshotIsolation(t *testing.T) {
	var n Navigator
	set := records("a", "b", "c")
	require.NoError(t, n.Open(set, 2))

	rec, err := n.Current()
	require.NoError(t, err)
	assert.Equal(t, "c", rec.ID)

	// Caller-side mutation of the returned record must not leak back.
	rec.ID = "mutated"
	again, err := n.Current()
	require.NoError(t, err)
	assert.Equal(t, "c", again.ID)
}
