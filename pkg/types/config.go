// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// SplitPolicy bounds how extracted text is divided into output parts.
// A document whose length stays at or below MaxCharsPerPart is written as a
// single artifact; anything larger is split into between MinParts and
// MaxParts pieces. Lengths are rune counts, not bytes.
type SplitPolicy struct {
	// MaxCharsPerPart is the largest number of characters a single
	// output file should hold before splitting kicks in (default 50000).
	MaxCharsPerPart int `json:"max_chars_per_part" yaml:"max_chars_per_part"`

	// MinParts is the smallest number of parts a split document may
	// produce (default 2).
	MinParts int `json:"min_parts" yaml:"min_parts"`

	// MaxParts is the largest number of parts a split document may
	// produce (default 3).
	MaxParts int `json:"max_parts" yaml:"max_parts"`
}

// DefaultSplitPolicy returns the stock policy: 50000 characters per part,
// between 2 and 3 parts.
func DefaultSplitPolicy() SplitPolicy {
	return SplitPolicy{
		MaxCharsPerPart: 50000,
		MinParts:        2,
		MaxParts:        3,
	}
}

// Validate rejects policies the splitter cannot honor. MaxParts < MinParts
// is refused outright: the clamp arithmetic would otherwise return MinParts
// and silently overshoot the nominal ceiling.
func (p SplitPolicy) Validate() error {
	if p.MaxCharsPerPart < 1 {
		return fmt.Errorf("max chars per part must be positive, got %d", p.MaxCharsPerPart)
	}
	if p.MinParts < 1 {
		return fmt.Errorf("min parts must be positive, got %d", p.MinParts)
	}
	if p.MaxParts < p.MinParts {
		return fmt.Errorf("max parts (%d) must not be smaller than min parts (%d)", p.MaxParts, p.MinParts)
	}
	return nil
}

// ExtractConfig holds settings for an extraction run.
type ExtractConfig struct {
	// ScanDir is the directory searched for PDF files (default ".").
	ScanDir string `json:"scan_dir" yaml:"scan_dir"`

	// OutputDir is the directory text artifacts are written to
	// (default "extracted_texts").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Recursive controls whether ScanDir is searched recursively.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// Policy bounds the part-count decision for large documents.
	Policy SplitPolicy `json:"policy" yaml:"policy"`
}

// ManifestConfig holds settings for the extraction manifest database.
type ManifestConfig struct {
	// Dir is the base directory for the manifest (contains index/).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
