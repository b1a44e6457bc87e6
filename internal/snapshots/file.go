package snapshots

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatimaskitchen/storefront/internal/cart"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// FileStore writes one JSON file per snapshot key under Dir. Writes go
// through a temp file and a rename so a crash never leaves half a snapshot.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("snapshot directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cart.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", path, err)
	}
	return data, nil
}

func (f *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.Dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename snapshot into place: %w", err)
	}
	return nil
}

func (f *FileStore) path(key string) (string, error) {
	name := unsafeKeyChars.ReplaceAllString(strings.TrimSpace(key), "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(f.Dir, name+".json"), nil
}
