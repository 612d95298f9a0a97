package store

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
)

// fileBackend keeps one JSON file per key under dir.
type fileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*fileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewDatabaseError("write", "failed to create settings directory", err)
	}
	return &fileBackend{dir: dir}, nil
}

func (b *fileBackend) Name() string { return "file" }

func (b *fileBackend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+".json")
}

func (b *fileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewNotFoundError("settings not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to read settings file", err)
	}
	return data, nil
}

// Put writes to a temp file in the same directory and renames it over the
// target, so readers never see a partial document.
func (b *fileBackend) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(b.dir, ".settings-*")
	if err != nil {
		return errs.NewDatabaseError("write", "failed to create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errs.NewDatabaseError("write", "failed to write settings", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errs.NewDatabaseError("write", "failed to sync settings", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.NewDatabaseError("write", "failed to close settings file", err)
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		return errs.NewDatabaseError("write", "failed to replace settings file", err)
	}
	return nil
}
