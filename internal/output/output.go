// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output names and writes the text artifacts of an extraction run.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// forbidden are the characters replaced with underscores in artifact names.
const forbidden = `<>:"/\|?*`

// SanitizeStem makes a string safe for use as a filename stem: forbidden
// characters become underscores, whitespace runs collapse to a single space,
// and the result is trimmed.
func SanitizeStem(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(forbidden, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Stem derives the sanitized artifact stem from a PDF path: the base name
// without its extension, sanitized.
func Stem(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return SanitizeStem(strings.TrimSuffix(base, filepath.Ext(base)))
}

// SingleFileName names the artifact of an unsplit document.
func SingleFileName(stem string) string {
	return stem + ".txt"
}

// PartFileName names part n of m of a split document. The Russian
// часть/из ("part"/"of") literals are fixed format markers.
func PartFileName(stem string, n, m int) string {
	return fmt.Sprintf("%s_часть%d_из%d.txt", stem, n, m)
}

// WriteParts persists the parts of one document under dir, one artifact per
// part, reporting each write to w. A failed part is reported and skipped;
// the remaining parts are still attempted. It returns the filenames written.
//
// A single part is written as <stem>.txt; multiple parts are numbered with
// the actual produced count, not the requested one.
func WriteParts(dir, stem string, parts []string, w io.Writer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(parts))
	for i, part := range parts {
		name := SingleFileName(stem)
		if len(parts) > 1 {
			name = PartFileName(stem, i+1, len(parts))
		}

		if err := os.WriteFile(filepath.Join(dir, name), []byte(part), 0o644); err != nil {
			fmt.Fprintf(w, "  failed: %s (%v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  saved: %s (%d chars)\n", name, utf8.RuneCountInString(part))
		written = append(written, name)
	}
	return written, nil
}
