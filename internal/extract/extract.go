// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract drives the extraction pipeline: discover PDFs, pull their
// text page by page, decide whether to split, and persist the artifacts.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/akarpov/pdftext/internal/output"
	"github.com/akarpov/pdftext/internal/pdf"
	"github.com/akarpov/pdftext/internal/scan"
	"github.com/akarpov/pdftext/internal/split"
	"github.com/akarpov/pdftext/pkg/types"
)

// Recorder persists per-document results, typically to the extraction
// manifest. A nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, rec types.DocumentRecord, parts []string) error
}

// RunSummary is the folded outcome of an extraction run. Each document
// contributes exactly one counter; the summary is a value combined by the
// driver, never shared mutable state.
type RunSummary struct {
	// Saved counts documents written as a single artifact.
	Saved int `json:"saved" yaml:"saved"`
	// Split counts documents written as multiple parts.
	Split int `json:"split" yaml:"split"`
	// Empty counts documents that yielded no extractable text.
	Empty int `json:"empty" yaml:"empty"`
	// Failed counts documents that could not be opened or parsed.
	Failed int `json:"failed" yaml:"failed"`
	// TotalChars sums the extracted character counts of all documents.
	TotalChars int `json:"total_chars" yaml:"total_chars"`

	// Documents holds the per-document records, in processing order.
	Documents []types.DocumentRecord `json:"documents" yaml:"documents"`
}

// Total returns the number of documents processed.
func (s RunSummary) Total() int {
	return s.Saved + s.Split + s.Empty + s.Failed
}

// HasFailures reports whether any document failed entirely.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// add folds one document record into the summary.
func (s *RunSummary) add(rec types.DocumentRecord) {
	switch rec.Status {
	case types.ExtractSaved:
		s.Saved++
	case types.ExtractSplit:
		s.Split++
	case types.ExtractEmpty:
		s.Empty++
	case types.ExtractFailed:
		s.Failed++
	}
	s.TotalChars += rec.Chars
	s.Documents = append(s.Documents, rec)
}

// Run processes every PDF under cfg.ScanDir to completion, one document at a
// time, writing per-file status lines to w. A missing scan directory or an
// empty discovery result is an error before any processing begins; individual
// document failures are folded into the summary and do not abort the run.
func Run(ctx context.Context, ex pdf.Extractor, rec Recorder, cfg types.ExtractConfig, w io.Writer) (RunSummary, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return RunSummary{}, fmt.Errorf("split policy: %w", err)
	}

	paths, err := scan.DiscoverPDFs(cfg.ScanDir, cfg.Recursive)
	if err != nil {
		return RunSummary{}, err
	}
	if len(paths) == 0 {
		return RunSummary{}, fmt.Errorf("no PDF files found in %s", cfg.ScanDir)
	}

	var summary RunSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		record, parts := ProcessFile(ex, path, cfg, w)
		summary.add(record)

		if rec != nil {
			if err := rec.Record(ctx, record, parts); err != nil {
				fmt.Fprintf(w, "  warning: manifest record failed: %v\n", err)
			}
		}
	}

	fmt.Fprintf(w, "\nRun summary: %d saved, %d split, %d empty, %d failed (total: %d, %d chars)\n",
		summary.Saved, summary.Split, summary.Empty, summary.Failed, summary.Total(), summary.TotalChars)

	return summary, nil
}

// ProcessFile runs one PDF through the pipeline: extract, decide the part
// count, split, persist. It returns the document record and the part texts
// that were produced (nil for empty or failed documents).
func ProcessFile(ex pdf.Extractor, path string, cfg types.ExtractConfig, w io.Writer) (types.DocumentRecord, []string) {
	stem := output.Stem(path)
	record := types.DocumentRecord{
		ID:          stem,
		SourcePath:  path,
		ProcessedAt: time.Now().UTC(),
	}

	fmt.Fprintf(w, "\nprocessing: %s\n", filepath.Base(path))

	result, err := ex.Extract(path)
	if err != nil {
		fmt.Fprintf(w, "  failed: %v\n", err)
		record.Status = types.ExtractFailed
		record.Error = err.Error()
		return record, nil
	}

	record.Pages = result.Pages
	record.FailedPages = len(result.FailedPages)
	for _, page := range result.FailedPages {
		fmt.Fprintf(w, "  page %d: extraction failed, skipping\n", page)
	}

	record.Chars = utf8.RuneCountInString(result.Text)
	if strings.TrimSpace(result.Text) == "" {
		fmt.Fprintf(w, "  empty: no extractable text\n")
		record.Status = types.ExtractEmpty
		return record, nil
	}

	numParts := split.DetermineNumParts(record.Chars, cfg.Policy)

	var parts []string
	if numParts == 1 {
		parts = []string{result.Text}
	} else {
		fmt.Fprintf(w, "  large document (%d chars), splitting into %d parts\n", record.Chars, numParts)
		parts = split.IntoParts(result.Text, numParts)
	}

	written, err := output.WriteParts(cfg.OutputDir, stem, parts, w)
	if err != nil {
		fmt.Fprintf(w, "  failed: %v\n", err)
		record.Status = types.ExtractFailed
		record.Error = err.Error()
		return record, nil
	}

	record.Parts = len(written)
	record.OutputFiles = written
	if len(parts) > 1 {
		record.Status = types.ExtractSplit
	} else {
		record.Status = types.ExtractSaved
	}
	return record, parts
}

// WriteReport writes the run summary, including per-document records, to
// path as YAML.
func WriteReport(path string, summary RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
