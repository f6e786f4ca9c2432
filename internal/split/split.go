// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split decides how many parts a document's text needs and divides
// the text along paragraph boundaries. Both functions are pure; the policy
// is threaded in as a value, never read from ambient state.
package split

import (
	"strings"
	"unicode/utf8"

	"github.com/akarpov/pdftext/pkg/types"
)

// Separator joins paragraphs inside a part and delimits paragraphs during
// tokenization.
const Separator = "\n\n"

// DetermineNumParts returns how many output parts a document of textLength
// characters should be split into. Text that fits in a single part returns 1;
// anything larger returns ceil(textLength/MaxCharsPerPart) clamped to
// [MinParts, MaxParts]. The policy must have passed Validate.
func DetermineNumParts(textLength int, p types.SplitPolicy) int {
	if textLength <= p.MaxCharsPerPart {
		return 1
	}

	minRequired := (textLength + p.MaxCharsPerPart - 1) / p.MaxCharsPerPart

	n := minRequired
	if n > p.MaxParts {
		n = p.MaxParts
	}
	if n < p.MinParts {
		n = p.MinParts
	}
	return n
}

// IntoParts divides text into at most numParts contiguous chunks, breaking
// only at paragraph boundaries. When the text has fewer paragraphs than
// requested parts it falls back to line boundaries. Each returned chunk is
// trimmed and non-empty; the final part absorbs whatever remains once
// numParts-1 parts are closed, so it may run large.
//
// Empty and whitespace-only text comes back as a single element, unchanged.
func IntoParts(text string, numParts int) []string {
	if numParts <= 1 || strings.TrimSpace(text) == "" {
		return []string{text}
	}

	paragraphs := tokenize(text, Separator)

	// Not enough paragraphs to fill the requested parts: fall back to
	// single-line units.
	if len(paragraphs) < numParts {
		paragraphs = tokenize(text, "\n")
	}
	if len(paragraphs) == 0 {
		return []string{text}
	}

	totalChars := utf8.RuneCountInString(text)
	charsPerPart := float64(totalChars) / float64(numParts)

	var parts []string
	var current strings.Builder
	currentChars := 0

	// The threshold is cumulative against the original total rather than
	// reset per part, so uneven paragraph sizes do not compound drift.
	targetChars := charsPerPart

	for _, para := range paragraphs {
		paraChars := utf8.RuneCountInString(para)

		if float64(currentChars+paraChars) <= targetChars || len(parts) == numParts-1 {
			if current.Len() > 0 {
				current.WriteString(Separator)
			}
			current.WriteString(para)
			currentChars += paraChars + 2 // +2 for the separator
		} else {
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
			current.WriteString(para)
			currentChars = paraChars
			targetChars = charsPerPart * float64(len(parts)+1)
		}
	}

	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	// The last-part tie-break above keeps the count in range; the clamp
	// guards pathological paragraph-size distributions.
	if len(parts) > numParts {
		parts = parts[:numParts]
	}
	return parts
}

// tokenize splits text on sep, trims each fragment, and drops empty ones.
func tokenize(text, sep string) []string {
	fragments := strings.Split(text, sep)
	units := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			units = append(units, f)
		}
	}
	return units
}
