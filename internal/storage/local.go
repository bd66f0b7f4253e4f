package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStorage writes uploads under a root directory on local disk
type localStorage struct {
	root string
	log  zerolog.Logger
}

// NewLocal creates a local disk storage rooted at dir
func NewLocal(dir string, log zerolog.Logger) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStorage{
		root: dir,
		log:  log.With().Str("component", "storage").Str("backend", "local").Logger(),
	}, nil
}

// Save writes the content to root/key. The write goes through a temp file
// and a rename so a partially written upload is never visible under its
// final key.
func (s *localStorage) Save(ctx context.Context, key string, r io.Reader, size int64) error {
	dest := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create category directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move upload into place: %w", err)
	}

	s.log.Debug().Str("key", key).Int64("size", size).Msg("Upload stored")
	return nil
}

// Remove deletes the content stored under key. Removing a key that does not
// exist is not an error.
func (s *localStorage) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
