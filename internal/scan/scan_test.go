// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"
)

// populate creates empty files and subdirectories under dir.
func populate(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverPDFs(t *testing.T) {
	dir := t.TempDir()
	populate(t, dir, "a.pdf", "b.PDF", "notes.txt", "nested/c.pdf")

	paths, err := DiscoverPDFs(dir, false)
	if err != nil {
		t.Fatalf("DiscoverPDFs failed: %v", err)
	}

	want := []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.PDF")}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDiscoverPDFs_Recursive(t *testing.T) {
	dir := t.TempDir()
	populate(t, dir, "a.pdf", "nested/deep/c.pdf", "nested/readme.md")

	paths, err := DiscoverPDFs(dir, true)
	if err != nil {
		t.Fatalf("DiscoverPDFs failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
}

func TestDiscoverPDFs_MissingDirectory(t *testing.T) {
	if _, err := DiscoverPDFs(filepath.Join(t.TempDir(), "absent"), false); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDiscoverPDFs_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	populate(t, dir, "file.pdf")

	if _, err := DiscoverPDFs(filepath.Join(dir, "file.pdf"), false); err == nil {
		t.Fatal("expected error for non-directory path")
	}
}

func TestDiscoverPDFs_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	populate(t, dir, "notes.txt")

	paths, err := DiscoverPDFs(dir, false)
	if err != nil {
		t.Fatalf("DiscoverPDFs failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no PDFs, got %v", paths)
	}
}
