// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers PDF files to process.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverPDFs returns the paths of all PDF files under dir, sorted for
// deterministic processing order. With recursive set, subdirectories are
// searched as well. A missing or unreadable directory is an error; an empty
// result is not.
func DiscoverPDFs(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path %s is not a directory", dir)
	}

	var paths []string

	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
