package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harrison/docverify/internal/models"
)

func sampleBlock() models.FencedBlock {
	return models.FencedBlock{
		Language:   "toml",
		Info:       "toml",
		Content:    "[general]\nport = \"abc\"\n",
		SourceFile: "docs/configuration.md",
		Ordinal:    2,
		Line:       14,
	}
}

// TestNewConsoleLogger verifies the constructor normalizes levels and never
// enables color for non-terminal writers.
func TestNewConsoleLogger(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"info", "info"},
		{"DEBUG", "debug"},
		{" warn ", "warn"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.input)
			if logger.logLevel != tt.want {
				t.Errorf("logLevel = %q, want %q", logger.logLevel, tt.want)
			}
			if logger.colorOutput {
				t.Error("expected color output to be disabled for a bytes.Buffer")
			}
		})
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")
	// Must not panic.
	logger.LogInfo("nothing")
	logger.LogOutcome(models.VerificationOutcome{Block: sampleBlock()})
}

// TestLevelFiltering verifies messages below the configured level are dropped.
func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "warn")

	logger.LogDebug("debug message")
	logger.LogInfo("info message")
	logger.LogWarn("warn message")
	logger.LogError("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("expected debug and info to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn message") {
		t.Errorf("expected warn line, got:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] error message") {
		t.Errorf("expected error line, got:\n%s", out)
	}
}

func TestLogFileStart(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogFileStart("docs/index.md", 3)

	if !strings.Contains(buf.String(), "[INFO] Checking docs/index.md (3 blocks)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

// TestLogOutcomeFailure verifies a rejected block is printed with its location,
// raw content and the validator diagnostic.
func TestLogOutcomeFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogOutcome(models.VerificationOutcome{
		Block:          sampleBlock(),
		Classification: models.VerifyAsMainConfig,
		Diagnostic:     "invalid type: string \"abc\", expected u16",
	})

	out := buf.String()
	for _, want := range []string{
		"[ERROR] FAIL docs/configuration.md:14 (main-config)",
		"----- content -----\n[general]\nport = \"abc\"\n",
		"----- diagnostic -----\ninvalid type: string \"abc\", expected u16\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogOutcomePassIsDebug(t *testing.T) {
	outcome := models.VerificationOutcome{
		Block:          sampleBlock(),
		Classification: models.VerifyAsUsersConfig,
		Passed:         true,
		Duration:       120 * time.Millisecond,
	}

	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogOutcome(outcome)
	if buf.Len() != 0 {
		t.Errorf("expected passing block to be hidden at info, got %q", buf.String())
	}

	buf.Reset()
	NewConsoleLogger(buf, "debug").LogOutcome(outcome)
	if !strings.Contains(buf.String(), "PASS docs/configuration.md:14 (users-config, 120ms)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogOutcomeSuppressedIsWarn(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "warn").LogOutcome(models.VerificationOutcome{
		Block:          sampleBlock(),
		Classification: models.VerifyAsQuery,
		Passed:         true,
		Suppressed:     true,
		Diagnostic:     "allowlisted START_REPLICATION",
	})

	if !strings.Contains(buf.String(), "[WARN] PASS docs/configuration.md:14 (query): allowlisted START_REPLICATION") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogAbort(t *testing.T) {
	block := sampleBlock()
	block.Language = "postgresql"
	block.Content = "SELEC 1;"

	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "error").LogAbort(models.VerificationOutcome{
		Block:          block,
		Classification: models.VerifyAsQuery,
		Diagnostic:     "syntax error at or near \"SELEC\"",
	})

	out := buf.String()
	if !strings.Contains(out, "ABORT docs/configuration.md:14 (query) failed to parse, stopping") {
		t.Errorf("missing abort line: %q", out)
	}
	if !strings.Contains(out, "SELEC 1;\n----- diagnostic -----\nsyntax error") {
		t.Errorf("missing content or diagnostic: %q", out)
	}
}

// TestLogSummary verifies the summary line and verdict for each run result.
func TestLogSummary(t *testing.T) {
	failure := models.VerificationOutcome{Block: sampleBlock(), Classification: models.VerifyAsMainConfig}

	tests := []struct {
		name    string
		report  *models.Report
		summary string
		verdict string
	}{
		{
			name:    "clean",
			report:  &models.Report{Files: 2, Blocks: 5, Verified: 3, Skipped: 2, Duration: 2 * time.Second},
			summary: "Checked 2 files, 5 blocks: 3 verified, 2 skipped, 0 failed (2s)",
			verdict: "[INFO] All documentation examples are valid",
		},
		{
			name:    "config failures",
			report:  &models.Report{Files: 1, Blocks: 2, Verified: 2, Failures: []models.VerificationOutcome{failure, failure}},
			summary: "2 verified, 0 skipped, 2 failed",
			verdict: "[ERROR] 2 config block(s) failed validation",
		},
		{
			name:    "aborted",
			report:  &models.Report{Files: 1, Blocks: 1, Verified: 1, Aborted: &failure},
			summary: "1 failed",
			verdict: "[ERROR] Aborted: query block at docs/configuration.md:14 is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewConsoleLogger(buf, "info").LogSummary(tt.report)
			out := buf.String()
			if !strings.Contains(out, tt.summary) {
				t.Errorf("expected summary %q in:\n%s", tt.summary, out)
			}
			if !strings.Contains(out, tt.verdict) {
				t.Errorf("expected verdict %q in:\n%s", tt.verdict, out)
			}
		})
	}
}

func TestLogPlanned(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogPlanned(sampleBlock(), models.VerifyAsMainConfig)

	if !strings.Contains(buf.String(), "PLAN docs/configuration.md:14 \"toml\" -> main-config") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{450 * time.Millisecond, "450ms"},
		{5 * time.Second, "5s"},
		{2 * time.Minute, "2m"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDiagnosticAddsTrailingNewline(t *testing.T) {
	got := formatDiagnostic(models.VerificationOutcome{
		Block: models.FencedBlock{Content: "SELECT"},
	})
	want := "----- content -----\nSELECT\n----- diagnostic -----\n----------------------\n"
	if got != want {
		t.Errorf("formatDiagnostic() = %q, want %q", got, want)
	}
}

// TestMultiLogger verifies every event reaches every logger.
func TestMultiLogger(t *testing.T) {
	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	multi := MultiLogger{NewConsoleLogger(a, "info"), NewNoOpLogger(), NewConsoleLogger(b, "info")}

	multi.LogFileStart("docs/a.md", 1)
	multi.LogSummary(&models.Report{Files: 1})

	for name, buf := range map[string]*bytes.Buffer{"first": a, "second": b} {
		if !strings.Contains(buf.String(), "Checking docs/a.md (1 blocks)") {
			t.Errorf("%s logger missed file start: %q", name, buf.String())
		}
		if !strings.Contains(buf.String(), "All documentation examples are valid") {
			t.Errorf("%s logger missed summary: %q", name, buf.String())
		}
	}
}
