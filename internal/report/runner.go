// Package report drives a verification run: it discovers documentation pages,
// extracts and classifies their fenced blocks, hands each block to a verifier
// and aggregates the outcomes into a models.Report.
//
// Config failures are soft. They are logged as they happen and the run goes
// on, so one run reports every broken config example. A query failure is hard
// and ends the run at once.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harrison/docverify/internal/classifier"
	"github.com/harrison/docverify/internal/config"
	"github.com/harrison/docverify/internal/fileutil"
	"github.com/harrison/docverify/internal/logger"
	"github.com/harrison/docverify/internal/models"
	"github.com/harrison/docverify/internal/parser"
)

// Logger receives progress events of a run.
type Logger interface {
	LogRunStart(runID, docsRoot string, dryRun bool)
	LogFileStart(path string, blocks int)
	LogClassification(block models.FencedBlock, kind models.Classification)
	LogPlanned(block models.FencedBlock, kind models.Classification)
	LogOutcome(outcome models.VerificationOutcome)
	LogAbort(outcome models.VerificationOutcome)
	LogSummary(report *models.Report)
}

// BlockVerifier verifies one classified block. A returned error is fatal to
// the run; a rejected block is reported through the outcome instead.
type BlockVerifier interface {
	Verify(ctx context.Context, block models.FencedBlock, kind models.Classification) (models.VerificationOutcome, error)
}

// Options configures a Runner.
type Options struct {
	RunID    string        // Generated when empty
	Verifier BlockVerifier // Required unless the config is a dry run
	Logger   Logger        // Optional, events are discarded when nil
}

// Runner runs verification over a documentation tree.
type Runner struct {
	config     *config.Config
	rules      classifier.Rules
	verifier   BlockVerifier
	logger     Logger
	runID      string
	extractors map[parser.Format]parser.Extractor
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg *config.Config, opts Options) *Runner {
	if cfg == nil {
		panic("config cannot be nil")
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	var log Logger = logger.NewNoOpLogger()
	if opts.Logger != nil {
		log = opts.Logger
	}

	return &Runner{
		config:     cfg,
		rules:      cfg.Classifier.Rules(),
		verifier:   opts.Verifier,
		logger:     log,
		runID:      runID,
		extractors: make(map[parser.Format]parser.Extractor),
	}
}

// RunID returns the identifier of the run.
func (r *Runner) RunID() string {
	return r.runID
}

// Discover returns the documentation files under the docs root in sorted
// order. Paths keep the docs root as configured so diagnostics stay short.
func (r *Runner) Discover() ([]string, error) {
	root := r.config.DocsRoot
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &DiscoveryError{Path: root, Err: err}
	}

	result, err := fileutil.ScanDirectory(absRoot, fileutil.ScanOptions{
		Extensions:   r.config.Extensions,
		Recursive:    true,
		ExcludeDirs:  r.config.ExcludeDirs,
		ExcludeGlobs: r.config.ExcludeGlobs,
	})
	if err != nil {
		return nil, &DiscoveryError{Path: root, Err: err}
	}
	if len(result.Errors) > 0 {
		return nil, &DiscoveryError{Path: root, Err: errors.Join(result.Errors...)}
	}

	files := make([]string, 0, len(result.Files))
	for _, abs := range result.Files {
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil {
			return nil, &DiscoveryError{Path: abs, Err: err}
		}
		files = append(files, filepath.Join(root, rel))
	}
	return files, nil
}

// readDocument reads one documentation page. Pages must be UTF-8 text.
func readDocument(path string) (models.DocumentFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.DocumentFile{}, &DiscoveryError{Path: path, Err: err}
	}
	if !utf8.Valid(content) {
		return models.DocumentFile{}, &DiscoveryError{Path: path, Err: errors.New("file is not valid UTF-8")}
	}
	return models.DocumentFile{Path: path, Content: content}, nil
}

// extract returns the fenced blocks of doc using the extractor for its format.
func (r *Runner) extract(doc models.DocumentFile) ([]models.FencedBlock, error) {
	format := parser.DetectFormat(doc.Path)
	ext, ok := r.extractors[format]
	if !ok {
		var err error
		ext, err = parser.NewExtractor(format)
		if err != nil {
			return nil, &parser.ExtractionError{Path: doc.Path, Err: err}
		}
		r.extractors[format] = ext
	}
	return ext.Extract(doc.Path, doc.Content)
}

// Walk discovers the documentation files and calls visit once per file, in
// order, with the file's blocks in document order. Walk stops at the first
// error from discovery, reading, extraction or visit.
func (r *Runner) Walk(ctx context.Context, visit func(doc models.DocumentFile, blocks []models.FencedBlock) error) error {
	files, err := r.Discover()
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		blocks, err := r.extract(doc)
		if err != nil {
			return err
		}
		if err := visit(doc, blocks); err != nil {
			return err
		}
	}
	return nil
}

// Classify returns the verification strategy for block.
func (r *Runner) Classify(block models.FencedBlock) models.Classification {
	return r.rules.Classify(block.Language, block.Content)
}

// Run verifies every block under the docs root.
//
// It returns the report together with:
//   - nil when every verified block passed,
//   - an error wrapping ErrConfigFailures when config blocks were rejected,
//   - a *QueryValidationError when a query block failed (the run stops there),
//   - any other error (discovery, extraction, scratch, validator start) as fatal.
//
// The report is never nil.
func (r *Runner) Run(ctx context.Context) (*models.Report, error) {
	if r.verifier == nil && !r.config.DryRun {
		return &models.Report{RunID: r.runID}, fmt.Errorf("no verifier configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stop the current validator process on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	report := &models.Report{RunID: r.runID}
	r.logger.LogRunStart(r.runID, r.config.DocsRoot, r.config.DryRun)

	err := r.Walk(ctx, func(doc models.DocumentFile, blocks []models.FencedBlock) error {
		report.Files++
		report.Blocks += len(blocks)
		r.logger.LogFileStart(doc.Path, len(blocks))

		for _, block := range blocks {
			if err := r.verifyBlock(ctx, report, block); err != nil {
				return err
			}
		}
		return nil
	})

	report.Duration = time.Since(start)
	r.logger.LogSummary(report)

	if err != nil {
		return report, err
	}
	if n := len(report.Failures); n > 0 {
		return report, fmt.Errorf("%d %w", n, ErrConfigFailures)
	}
	return report, nil
}

// verifyBlock classifies and verifies one block, recording the outcome.
func (r *Runner) verifyBlock(ctx context.Context, report *models.Report, block models.FencedBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kind := r.Classify(block)
	r.logger.LogClassification(block, kind)

	if kind == models.Skip {
		report.Skipped++
	}
	if r.config.DryRun {
		r.logger.LogPlanned(block, kind)
		return nil
	}
	if kind == models.Skip {
		return nil
	}

	outcome, err := r.verifier.Verify(ctx, block, kind)
	if err != nil {
		return err
	}
	report.Verified++

	switch {
	case outcome.Passed:
		r.logger.LogOutcome(outcome)
	case kind == models.VerifyAsQuery:
		report.Aborted = &outcome
		r.logger.LogAbort(outcome)
		return &QueryValidationError{Outcome: outcome}
	default:
		report.Failures = append(report.Failures, outcome)
		r.logger.LogOutcome(outcome)
	}
	return nil
}
