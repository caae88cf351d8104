package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/docverify/internal/models"
)

const testRunID = "3f2b8c1a-0000-4000-8000-000000000000"

func readRunLog(t *testing.T, fl *FileLogger) string {
	t.Helper()
	data, err := os.ReadFile(fl.Path())
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	return string(data)
}

// TestNewFileLoggerCreatesDirectory verifies a nested log directory is created.
func TestNewFileLoggerCreatesDirectory(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	fl, err := NewFileLogger(logDir, "info", testRunID)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("expected log directory %s to exist: %v", logDir, err)
	}
	name := filepath.Base(fl.Path())
	if !strings.HasPrefix(name, "run-") || !strings.HasSuffix(name, "-3f2b8c1a.log") {
		t.Errorf("unexpected run log name %q", name)
	}
}

// TestFileLoggerHeader verifies the run ID is written at the top of the log.
func TestFileLoggerHeader(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", testRunID)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	content := readRunLog(t, fl)
	if !strings.HasPrefix(content, "=== docverify run log ===\n") {
		t.Errorf("missing header: %q", content)
	}
	if !strings.Contains(content, "Run ID: "+testRunID) {
		t.Errorf("missing run ID: %q", content)
	}
}

// TestLatestSymlink verifies latest.log always points at the newest run.
func TestLatestSymlink(t *testing.T) {
	logDir := t.TempDir()

	first, err := NewFileLogger(logDir, "info", "aaaaaaaa-run")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	first.Close()

	second, err := NewFileLogger(logDir, "info", "bbbbbbbb-run")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer second.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("failed to read latest.log: %v", err)
	}
	if target != filepath.Base(second.Path()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(second.Path()))
	}
}

// TestFileLoggerFailureAndSummary verifies failures are logged with content and
// diagnostic, and the summary carries the verdict.
func TestFileLoggerFailureAndSummary(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", testRunID)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	failure := models.VerificationOutcome{
		Block:          sampleBlock(),
		Classification: models.VerifyAsMainConfig,
		Diagnostic:     "unknown field `prot`",
	}
	fl.LogFileStart("docs/configuration.md", 2)
	fl.LogOutcome(failure)
	fl.LogSummary(&models.Report{Files: 1, Blocks: 2, Verified: 2, Failures: []models.VerificationOutcome{failure}})
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content := readRunLog(t, fl)
	for _, want := range []string{
		"[INFO] Checking docs/configuration.md (2 blocks)",
		"[ERROR] FAIL docs/configuration.md:14 (main-config)",
		"unknown field `prot`",
		"=== Summary ===",
		"1 config block(s) failed validation",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected run log to contain %q, got:\n%s", want, content)
		}
	}
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "error", testRunID)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	fl.LogFileStart("docs/index.md", 1)
	if strings.Contains(readRunLog(t, fl), "Checking docs/index.md") {
		t.Error("expected info line to be filtered at error level")
	}
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", testRunID)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	// Writes after close are dropped.
	fl.LogFileStart("docs/index.md", 1)
}
