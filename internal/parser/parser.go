// Package parser extracts fenced code blocks from documentation sources.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/docverify/internal/models"
)

// Format represents the format of a documentation file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) page
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extractor is the interface that all block extractors must implement
type Extractor interface {
	// Extract returns the fenced blocks of source in document order
	Extract(path string, source []byte) ([]models.FencedBlock, error)
}

// DetectFormat detects the documentation format based on file extension
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// NewExtractor creates a new extractor for the specified format
func NewExtractor(format Format) (Extractor, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ExtractionError reports that the tokenizer could not process a document.
type ExtractionError struct {
	Path string
	Err  error
}

// Error implements the error interface for ExtractionError.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract blocks from %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying tokenizer error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
