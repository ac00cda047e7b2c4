package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// LocalImageStore writes images under a directory of an afero filesystem.
type LocalImageStore struct {
	fs  afero.Fs
	dir string
}

var _ ImageStore = (*LocalImageStore)(nil)

func NewLocalImageStore(fs afero.Fs, dir string) (*LocalImageStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	return &LocalImageStore{fs: fs, dir: dir}, nil
}

func (s *LocalImageStore) path(key string) string {
	return path.Join(s.dir, path.Base(key))
}

func (s *LocalImageStore) Put(_ context.Context, key, _ string, data []byte) error {
	if err := afero.WriteFile(s.fs, s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write image %s: %w", key, err)
	}
	return nil
}

// Open sniffs the content type from the file head since the filesystem
// keeps no metadata.
func (s *LocalImageStore) Open(_ context.Context, key string) (*Object, error) {
	f, err := s.fs.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat image %s: %w", key, err)
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to detect image type %s: %w", key, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rewind image %s: %w", key, err)
	}

	return &Object{Body: f, ContentType: mt.String(), Size: info.Size()}, nil
}

func (s *LocalImageStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}
