package media

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/littleyear/iv-engine/internal/config"
)

func TestLocalStore_SaveStatOpen(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	content := []byte("video-bytes")
	if err := store.Save(ctx, "iv-1.mp4", bytes.NewReader(content), "video/mp4"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := store.Stat(ctx, "iv-1.mp4")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.Exists {
		t.Fatal("Exists = false after save")
	}
	if info.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", info.Size, len(content))
	}

	f, err := store.Open(ctx, "iv-1.mp4")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestLocalStore_StatMissingIsNotError(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	info, err := store.Stat(context.Background(), "missing.mp4")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Exists {
		t.Error("Exists = true for missing file")
	}
	if info.Size != 0 {
		t.Errorf("Size = %d, want 0", info.Size)
	}
}

func TestLocalStore_SaveOverwrites(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, "iv-1.mp4", strings.NewReader("first"), "video/mp4"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "iv-1.mp4", strings.NewReader("second take"), "video/mp4"); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}

	info, err := store.Stat(ctx, "iv-1.mp4")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != int64(len("second take")) {
		t.Errorf("Size = %d, want %d", info.Size, len("second take"))
	}
}

func TestLocalStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	if err := store.Save(context.Background(), "iv-1.mp4", strings.NewReader("x"), "video/mp4"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestNew_LocalByDefault(t *testing.T) {
	store, err := New(config.S3Config{}, t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if store.Type() != "local" {
		t.Errorf("Type = %q, want local", store.Type())
	}
}
