package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "AgendaParlamentar_json.txt"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := NewDirSource(dir)
	rc, err := src.Open(context.Background(), "AgendaParlamentar_json.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "[]" {
		t.Fatalf("content: got=%q", b)
	}
	if _, err := src.Open(context.Background(), "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound got=%v", err)
	}
}
