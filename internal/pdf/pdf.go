// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf extracts plain text from PDF files page by page.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageMarker is the format of the boundary line inserted before each page's
// text. The Russian literal is a fixed format marker, not configurable.
const PageMarker = "--- Страница %d ---"

// Result holds the text extracted from one PDF.
type Result struct {
	// Text is the concatenated page text, with a page marker line before
	// each page that yielded text.
	Text string

	// Pages is the page count the document reports.
	Pages int

	// FailedPages lists 1-based page numbers whose extraction failed.
	// The remaining pages are still present in Text.
	FailedPages []int
}

// Extractor pulls text from a PDF file. The concrete implementation wraps
// ledongthuc/pdf; tests supply fakes.
type Extractor interface {
	// Extract reads the PDF at path and returns its text. An error means
	// the document could not be opened or parsed at all; per-page
	// failures are reported through Result.FailedPages instead.
	Extract(path string) (Result, error)
}

// Reader is the ledongthuc/pdf-backed Extractor.
type Reader struct{}

// NewReader returns the default PDF text extractor.
func NewReader() Extractor {
	return &Reader{}
}

// Extract opens the PDF at path and walks its pages in order. A page whose
// text extraction fails is recorded and skipped; a single bad page does not
// abort the document.
func (r *Reader) Extract(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat PDF: %w", err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return Result{}, fmt.Errorf("parsing PDF: %w", err)
	}

	result := Result{Pages: reader.NumPage()}

	var text strings.Builder
	for pageNum := 1; pageNum <= result.Pages; pageNum++ {
		pageText, err := extractPage(reader, pageNum)
		if err != nil {
			result.FailedPages = append(result.FailedPages, pageNum)
			continue
		}
		if pageText == "" {
			continue
		}
		text.WriteString("\n")
		fmt.Fprintf(&text, PageMarker, pageNum)
		text.WriteString("\n")
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	result.Text = text.String()
	return result, nil
}

// extractPage pulls the plain text of a single page. GetPlainText panics on
// some malformed content streams, so a panic counts as a page failure.
func extractPage(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
