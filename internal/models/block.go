package models

import "strconv"

// DocumentFile is a documentation source read from disk.
type DocumentFile struct {
	Path    string // Path as discovered under the docs root
	Content []byte // Raw file content
}

// FencedBlock is a single fenced code block extracted from a document.
type FencedBlock struct {
	Language   string // First word of the info string ("toml", "postgresql", ...)
	Info       string // Full info string following the opening fence
	Content    string // Raw block content, container indentation removed
	SourceFile string // Document the block was extracted from
	Ordinal    int    // 1-based position of the fence within its document
	Line       int    // 1-based line of the opening fence, 0 if unknown
}

// Location returns "file:line" for diagnostics, falling back to "file#ordinal"
// when the line is unknown.
func (b FencedBlock) Location() string {
	if b.Line > 0 {
		return b.SourceFile + ":" + strconv.Itoa(b.Line)
	}
	return b.SourceFile + "#" + strconv.Itoa(b.Ordinal)
}
