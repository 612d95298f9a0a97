package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	_, err = b.Get(ctx, "dragonstream:widget_config_v2")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := b.Put(ctx, "dragonstream:widget_config_v2", []byte(`[1]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Put(ctx, "dragonstream:widget_config_v2", []byte(`[2]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := b.Get(ctx, "dragonstream:widget_config_v2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[2]` {
		t.Errorf("expected latest write, got %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single settings file and no temp leftovers, got %d entries", len(entries))
	}
}

func TestFileBackend_KeysWithSeparators(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if err := b.Put(ctx, "ns:users/u1:widget_config_v2", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Get(ctx, "ns:users/u1:widget_config_v2"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
