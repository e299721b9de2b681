package localfs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	key, err := store.Save(context.Background(), bytes.NewReader([]byte("%PDF-1.4 hello")))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if key == "" {
		t.Fatalf("expected non-empty key")
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "%PDF-1.4 hello" {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestSaveGeneratesUniqueKeys(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	k1, err := store.Save(context.Background(), bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	k2, err := store.Save(context.Background(), bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if k1 == k2 {
		t.Fatalf("identical bytes must still get distinct keys, got %q twice", k1)
	}
}

func TestOpenUnknownKeyIsArtifactNotFound(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = store.Open(context.Background(), "no-such-key.pdf")
	if !domain.IsKind(err, domain.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestOpenAfterOutOfBandDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	key, err := store.Save(context.Background(), bytes.NewReader([]byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.Remove(filepath.Join(dir, key)); err != nil {
		t.Fatalf("remove artifact: %v", err)
	}

	_, err = store.Open(context.Background(), key)
	if !domain.IsKind(err, domain.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound after delete, got %v", err)
	}
}

func TestOpenStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = store.Open(context.Background(), "../../etc/passwd")
	if !domain.IsKind(err, domain.ErrArtifactNotFound) {
		t.Fatalf("expected traversal attempt to miss, got %v", err)
	}
}
