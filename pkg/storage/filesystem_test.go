package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sys, err := storage.NewFilesystem(dir, logger)
	if err != nil {
		t.Fatalf("NewFilesystem() error = %v", err)
	}
	return sys, dir
}

func TestFilesystem_StoreRetrieve(t *testing.T) {
	sys, dir := newFilesystem(t)
	ctx := context.Background()
	key := "documents/abc/1700000000000-refs.docx"

	if err := sys.Store(ctx, key, []byte("payload")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Retrieve() = %q, want payload", data)
	}

	path, err := sys.Path(ctx, key)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if path != filepath.Join(dir, "documents", "abc", "1700000000000-refs.docx") {
		t.Errorf("Path() = %q", path)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "documents", "abc"))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestFilesystem_Overwrite(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	sys.Store(ctx, "a/b", []byte("one"))
	sys.Store(ctx, "a/b", []byte("two"))

	data, _ := sys.Retrieve(ctx, "a/b")
	if string(data) != "two" {
		t.Errorf("Retrieve() = %q, want two", data)
	}
}

func TestFilesystem_RetrieveMissing(t *testing.T) {
	sys, _ := newFilesystem(t)

	_, err := sys.Retrieve(context.Background(), "missing/file")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "../escape", "a/../../escape", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestFilesystem_Delete(t *testing.T) {
	sys, dir := newFilesystem(t)
	ctx := context.Background()
	key := "documents/xyz/file.docx"

	sys.Store(ctx, key, []byte("x"))

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	ok, err := sys.Validate(ctx, key)
	if err != nil || ok {
		t.Errorf("Validate() = (%v, %v), want (false, nil)", ok, err)
	}

	if _, err := os.Stat(filepath.Join(dir, "documents", "xyz")); !os.IsNotExist(err) {
		t.Error("empty parent directory was not removed")
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestFilesystem_Start(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "blobs")
	sys, err := storage.NewFilesystem(base, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewFilesystem() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	if _, err := os.Stat(base); err != nil {
		t.Errorf("base directory not created: %v", err)
	}
}
