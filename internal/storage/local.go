package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements Storage on a content directory. Keys are
// slash-separated relative paths under the base directory.
type localStorage struct {
	base string
}

// NewLocal creates a content-directory payload store rooted at dir,
// creating the directory if needed.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("content directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create content directory: %w", err)
	}
	return &localStorage{base: abs}, nil
}

// resolve maps a key to an absolute path and rejects keys that would
// escape the content directory.
func (l *localStorage) resolve(key string) (string, error) {
	p := filepath.Join(l.base, filepath.FromSlash(key))
	if p != l.base && !strings.HasPrefix(p, l.base+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q outside content directory", key)
	}
	return p, nil
}

func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	path, err := l.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create payload directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create payload file: %w", err)
	}
	n, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write payload file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat payload file: %w", err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: info.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	info := ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(path)),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

func (l *localStorage) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete payload file: %w", err)
	}
	return nil
}
