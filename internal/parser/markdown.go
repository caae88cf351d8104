package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/docverify/internal/models"
)

// MarkdownExtractor maps the fenced code blocks of a goldmark AST to
// models.FencedBlock values.
type MarkdownExtractor struct {
	markdown goldmark.Markdown
}

func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		markdown: goldmark.New(),
	}
}

// Extract parses source and returns its fenced code blocks in document order.
// Indented code blocks carry no language tag and are not returned.
func (p *MarkdownExtractor) Extract(path string, source []byte) (blocks []models.FencedBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = &ExtractionError{Path: path, Err: fmt.Errorf("tokenizer panic: %v", r)}
		}
	}()

	doc := p.markdown.Parser().Parse(text.NewReader(source))

	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		blocks = append(blocks, models.FencedBlock{
			Language:   string(fence.Language(source)),
			Info:       fenceInfo(fence, source),
			Content:    fenceContent(fence, source),
			SourceFile: path,
			Ordinal:    len(blocks) + 1,
			Line:       fenceLine(fence, source),
		})

		// Fenced blocks have no block children
		return ast.WalkSkipChildren, nil
	})
	if walkErr != nil {
		return nil, &ExtractionError{Path: path, Err: walkErr}
	}

	return blocks, nil
}

func fenceInfo(fence *ast.FencedCodeBlock, source []byte) string {
	if fence.Info == nil {
		return ""
	}
	return strings.TrimSpace(string(fence.Info.Segment.Value(source)))
}

func fenceContent(fence *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}

// fenceLine returns the 1-based line of the opening fence. The info string
// sits on the fence line; without one, the fence is the line above the first
// content line.
func fenceLine(fence *ast.FencedCodeBlock, source []byte) int {
	if fence.Info != nil {
		return lineAt(source, fence.Info.Segment.Start)
	}
	if lines := fence.Lines(); lines.Len() > 0 {
		return lineAt(source, lines.At(0).Start) - 1
	}
	return 0
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
