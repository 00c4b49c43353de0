package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	info, err := store.Put(ctx, "media/a.jpg", strings.NewReader("payload"), PutObjectOptions{
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "media/a.jpg", info.Key)
	assert.Equal(t, int64(7), info.Size)

	rc, got, err := store.Get(ctx, "media/a.jpg")
	require.NoError(t, err)
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(raw))
	assert.Equal(t, int64(7), got.Size)

	require.NoError(t, store.Delete(ctx, "media/a.jpg"))
	_, _, err = store.Get(ctx, "media/a.jpg")
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteMissingIsOK(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "media/never-existed.mp4"))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(ctx, "../outside.jpg", strings.NewReader("x"), PutObjectOptions{})
	assert.Error(t, err)

	_, _, err = store.Get(ctx, "../../etc/passwd")
	assert.Error(t, err)

	err = store.Delete(ctx, "../outside.jpg")
	assert.Error(t, err)
}

func TestLocalStorage_CreatesContentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocal(dir)
	require.NoError(t, err)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}
