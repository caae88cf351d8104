package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/docverify/internal/models"
)

// FileLogger writes a plain-text log of one run to a file in a log directory
// and keeps a latest.log symlink pointing at the most recent run.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir for the run identified by runID.
// The log file is named run-YYYYMMDD-HHMMSS-<id prefix>.log.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", stamp, short))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== docverify run log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\nStarted at: %s\n\n", runID, time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

func (fl *FileLogger) logWithLevel(level, message, trailer string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n%s", timestamp(), level, message, trailer))
}

// LogRunStart records the docs root and mode.
func (fl *FileLogger) LogRunStart(runID, docsRoot string, dryRun bool) {
	fl.logWithLevel("INFO", fmt.Sprintf("docs_root=%s dry_run=%t run=%s", docsRoot, dryRun, runID), "")
}

// LogFileStart records the start of a documentation file.
func (fl *FileLogger) LogFileStart(path string, blocks int) {
	fl.logWithLevel("INFO", fmt.Sprintf("Checking %s (%d blocks)", path, blocks), "")
}

// LogClassification records the strategy chosen for a block.
func (fl *FileLogger) LogClassification(block models.FencedBlock, kind models.Classification) {
	fl.logWithLevel("DEBUG", fmt.Sprintf("%s %q -> %s", block.Location(), block.Language, kind), "")
}

// LogPlanned records the strategy a dry run would use for a block.
func (fl *FileLogger) LogPlanned(block models.FencedBlock, kind models.Classification) {
	fl.logWithLevel("INFO", fmt.Sprintf("PLAN %s %q -> %s", block.Location(), block.Language, kind), "")
}

// LogOutcome records a verification outcome with diagnostics for failures.
func (fl *FileLogger) LogOutcome(outcome models.VerificationOutcome) {
	loc := outcome.Block.Location()
	switch {
	case outcome.Passed && outcome.Suppressed:
		fl.logWithLevel("WARN", fmt.Sprintf("PASS %s (%s): %s", loc, outcome.Classification, outcome.Diagnostic), "")
	case outcome.Passed:
		fl.logWithLevel("DEBUG", fmt.Sprintf("PASS %s (%s, %s)", loc, outcome.Classification, formatDuration(outcome.Duration)), "")
	default:
		fl.logWithLevel("ERROR", fmt.Sprintf("FAIL %s (%s) rejected by validator", loc, outcome.Classification), formatDiagnostic(outcome))
	}
}

// LogAbort records the query failure that stopped the run.
func (fl *FileLogger) LogAbort(outcome models.VerificationOutcome) {
	fl.logWithLevel("ERROR", fmt.Sprintf("ABORT %s (%s) failed to parse, stopping", outcome.Block.Location(), outcome.Classification), formatDiagnostic(outcome))
}

// LogSummary records the final counts and verdict.
func (fl *FileLogger) LogSummary(report *models.Report) {
	fl.writeRunLog(fmt.Sprintf("\n=== Summary ===\n%s\n%s\n", summaryLine(report), verdictLine(report)))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
