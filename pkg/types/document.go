// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractStatus indicates the outcome of processing a single PDF.
type ExtractStatus string

const (
	// ExtractSaved means text was extracted and written as one artifact.
	ExtractSaved ExtractStatus = "saved"
	// ExtractSplit means text was extracted and written as multiple parts.
	ExtractSplit ExtractStatus = "split"
	// ExtractEmpty means the PDF yielded no extractable text
	// (scanned-image-only documents, typically).
	ExtractEmpty ExtractStatus = "empty"
	// ExtractFailed means the PDF could not be opened or parsed at all.
	ExtractFailed ExtractStatus = "failed"
)

// DocumentRecord describes one processed PDF: where it came from, how much
// text it produced, and what was written out.
type DocumentRecord struct {
	// ID is a slug derived from the sanitized PDF filename.
	ID string `json:"id" yaml:"id"`

	// SourcePath is the filesystem path of the source PDF.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Pages is the number of pages the PDF reports.
	Pages int `json:"pages" yaml:"pages"`

	// FailedPages counts pages whose text extraction failed; the rest of
	// the document is still processed.
	FailedPages int `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`

	// Chars is the length of the extracted text in characters (runes).
	Chars int `json:"chars" yaml:"chars"`

	// Parts is the number of artifacts written (0 for empty or failed
	// documents, 1 for unsplit ones).
	Parts int `json:"parts" yaml:"parts"`

	// OutputFiles lists the artifact filenames, in part order.
	OutputFiles []string `json:"output_files,omitempty" yaml:"output_files,omitempty"`

	// Status is the processing outcome.
	Status ExtractStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed documents.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ProcessedAt is when processing of this document finished.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`
}
