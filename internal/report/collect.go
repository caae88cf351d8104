package report

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/docverify/internal/filelock"
	"github.com/harrison/docverify/internal/models"
)

// Snippet is a config block written out by Collect.
type Snippet struct {
	File    string `json:"file"`    // Page path relative to the docs root
	Content string `json:"content"` // Block content without surrounding blank lines
	Line    int    `json:"line"`    // Line of the opening fence
}

// Hash returns the hex md5 of the snippet's file, content and line.
func (s Snippet) Hash() string {
	data, _ := json.Marshal(s)
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// FileName returns users_<md5>.toml or config_<md5>.toml.
func (s Snippet) FileName(kind models.Classification) string {
	prefix := "config"
	if kind == models.VerifyAsUsersConfig {
		prefix = "users"
	}
	return fmt.Sprintf("%s_%s.toml", prefix, s.Hash())
}

// Render returns the file body: a location header, a blank line and the content.
func (s Snippet) Render() string {
	return fmt.Sprintf("# file: %s\n# line_number: %d\n\n%s\n", s.File, s.Line, s.Content)
}

// Collect writes every config block under the docs root to outDir as a
// standalone file so it can be checked by hand or by another job. The
// directory is emptied first. Skip and query blocks are not written.
// It returns the paths written in document order.
func (r *Runner) Collect(ctx context.Context, outDir string) ([]string, error) {
	if strings.TrimSpace(outDir) == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	var written []string
	err := r.Walk(ctx, func(doc models.DocumentFile, blocks []models.FencedBlock) error {
		r.logger.LogFileStart(doc.Path, len(blocks))

		for _, block := range blocks {
			kind := r.Classify(block)
			r.logger.LogClassification(block, kind)
			if !kind.IsConfig() {
				continue
			}

			snippet := Snippet{
				File:    r.relativeToRoot(block.SourceFile),
				Content: strings.TrimSpace(block.Content),
				Line:    block.Line,
			}
			path := filepath.Join(outDir, snippet.FileName(kind))
			if err := filelock.AtomicWrite(path, []byte(snippet.Render())); err != nil {
				return fmt.Errorf("failed to write snippet from %s: %w", block.Location(), err)
			}
			written = append(written, path)
		}
		return nil
	})
	return written, err
}

// relativeToRoot returns path relative to the docs root in slash form.
func (r *Runner) relativeToRoot(path string) string {
	rel, err := filepath.Rel(r.config.DocsRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
