// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeStem(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"forbidden characters replaced", `Report: Final/Draft?`, "Report_ Final_Draft_"},
		{"all forbidden characters", `<>:"/\|?*`, "_________"},
		{"whitespace runs collapsed", "annual   report\t2024", "annual report 2024"},
		{"leading and trailing whitespace trimmed", "  padded  ", "padded"},
		{"cyrillic preserved", "Отчёт за 2024 год", "Отчёт за 2024 год"},
		{"clean name untouched", "plain_name-1", "plain_name-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeStem(tt.in); got != tt.want {
				t.Errorf("SanitizeStem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	got := Stem(filepath.Join("some", "dir", "Report: Final/Draft?.pdf"))
	// filepath.Base stops at the slash inside the name, so only the
	// trailing component reaches sanitization.
	if !strings.HasSuffix(got, "Draft_") {
		t.Errorf("Stem = %q, want suffix %q", got, "Draft_")
	}

	if got := Stem("document.PDF"); got != "document" {
		t.Errorf("Stem = %q, want %q", got, "document")
	}
}

func TestPartFileName(t *testing.T) {
	got := PartFileName("doc", 2, 3)
	if got != "doc_часть2_из3.txt" {
		t.Errorf("PartFileName = %q", got)
	}
}

func TestWriteParts_Single(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer

	written, err := WriteParts(dir, "doc", []string{"full text"}, &log)
	if err != nil {
		t.Fatalf("WriteParts failed: %v", err)
	}
	if len(written) != 1 || written[0] != "doc.txt" {
		t.Fatalf("written = %v, want [doc.txt]", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "doc.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "full text" {
		t.Errorf("content = %q", data)
	}
	if !strings.Contains(log.String(), "saved: doc.txt") {
		t.Errorf("log = %q", log.String())
	}
}

func TestWriteParts_Multi(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer

	written, err := WriteParts(dir, "doc", []string{"one", "two", "three"}, &log)
	if err != nil {
		t.Fatalf("WriteParts failed: %v", err)
	}

	want := []string{"doc_часть1_из3.txt", "doc_часть2_из3.txt", "doc_часть3_из3.txt"}
	if len(written) != len(want) {
		t.Fatalf("written = %v, want %v", written, want)
	}
	for i, name := range want {
		if written[i] != name {
			t.Errorf("written[%d] = %q, want %q", i, written[i], name)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
}

func TestWriteParts_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	var log bytes.Buffer

	if _, err := WriteParts(dir, "doc", []string{"text"}, &log); err != nil {
		t.Fatalf("WriteParts failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.txt")); err != nil {
		t.Errorf("expected artifact in created directory: %v", err)
	}
}

func TestWriteParts_PartFailureContinues(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer

	// Pre-create a directory where part 1's file should go so its write
	// fails; parts 2 and 3 must still be written.
	blocker := filepath.Join(dir, "doc_часть1_из3.txt")
	if err := os.MkdirAll(blocker, 0o755); err != nil {
		t.Fatal(err)
	}

	written, err := WriteParts(dir, "doc", []string{"one", "two", "three"}, &log)
	if err != nil {
		t.Fatalf("WriteParts failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 surviving parts", written)
	}
	if !strings.Contains(log.String(), "failed: doc_часть1_из3.txt") {
		t.Errorf("log should report the failed part: %q", log.String())
	}
}
