// Package logger provides logging implementations for docverify runs.
//
// ConsoleLogger writes leveled, timestamped lines for operators reading CI
// output; FileLogger keeps a per-run log on disk. Both print failed blocks
// with their raw content and the validator's diagnostic so a failure can be
// fixed without reopening the page.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/docverify/internal/models"
)

// ConsoleLogger logs verification progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps for tracking execution flow.
// Color output is enabled when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	scheme      *colorScheme
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything else means info.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		scheme:      newColorScheme(),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR and TERM=dumb disable colors through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	cl.write(level, message, "")
}

// write emits one log line and an optional raw trailer (printed unprefixed).
func (cl *ConsoleLogger) write(level, message, trailer string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	io.WriteString(cl.writer, formatted+trailer)
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// paint applies c when color output is enabled.
func (cl *ConsoleLogger) paint(c *color.Color, s string) string {
	if !cl.colorOutput {
		return s
	}
	return c.Sprint(s)
}

// LogRunStart logs the start of a run at INFO level.
func (cl *ConsoleLogger) LogRunStart(runID, docsRoot string, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " (dry run, no verifier is invoked)"
	}
	cl.LogInfo(fmt.Sprintf("Checking documentation in %s%s [run %s]", docsRoot, mode, runID))
}

// LogFileStart logs the start of a documentation file at INFO level.
// Format: "[HH:MM:SS] [INFO] Checking <path> (<n> blocks)"
func (cl *ConsoleLogger) LogFileStart(path string, blocks int) {
	cl.LogInfo(fmt.Sprintf("Checking %s (%d blocks)", cl.paint(cl.scheme.label, path), blocks))
}

// LogClassification logs the strategy chosen for a block at DEBUG level.
func (cl *ConsoleLogger) LogClassification(block models.FencedBlock, kind models.Classification) {
	cl.LogDebug(fmt.Sprintf("%s %q -> %s", block.Location(), block.Language, kind))
}

// LogPlanned logs the strategy a dry run would use for a block at INFO level.
func (cl *ConsoleLogger) LogPlanned(block models.FencedBlock, kind models.Classification) {
	label := kind.String()
	if kind == models.Skip {
		label = cl.paint(cl.scheme.dim, label)
	}
	cl.LogInfo(fmt.Sprintf("PLAN %s %q -> %s", block.Location(), block.Language, label))
}

// LogOutcome logs a verification outcome. Passing blocks are DEBUG,
// allowlisted parse errors WARN, and failures ERROR followed by the block
// content and diagnostic.
func (cl *ConsoleLogger) LogOutcome(outcome models.VerificationOutcome) {
	loc := outcome.Block.Location()
	switch {
	case outcome.Passed && outcome.Suppressed:
		cl.LogWarn(fmt.Sprintf("%s %s (%s): %s", cl.paint(cl.scheme.warn, "PASS"), loc, outcome.Classification, outcome.Diagnostic))
	case outcome.Passed:
		cl.LogDebug(fmt.Sprintf("%s %s (%s, %s)", cl.paint(cl.scheme.success, "PASS"), loc, outcome.Classification, formatDuration(outcome.Duration)))
	default:
		cl.write("ERROR", fmt.Sprintf("%s %s (%s) rejected by validator", cl.paint(cl.scheme.fail, "FAIL"), loc, outcome.Classification), formatDiagnostic(outcome))
	}
}

// LogAbort logs the query failure that stops a run, with the block content
// and parser error.
func (cl *ConsoleLogger) LogAbort(outcome models.VerificationOutcome) {
	cl.write("ERROR", fmt.Sprintf("%s %s (%s) failed to parse, stopping", cl.paint(cl.scheme.fail, "ABORT"), outcome.Block.Location(), outcome.Classification), formatDiagnostic(outcome))
}

// LogSummary logs the final counts and verdict of a run.
func (cl *ConsoleLogger) LogSummary(report *models.Report) {
	cl.LogInfo(summaryLine(report))

	verdict := verdictLine(report)
	if report.Failed() {
		cl.LogError(cl.paint(cl.scheme.fail, verdict))
		return
	}
	cl.LogInfo(cl.paint(cl.scheme.success, verdict))
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogRunStart(runID, docsRoot string, dryRun bool) {}
func (n *NoOpLogger) LogFileStart(path string, blocks int) {}
func (n *NoOpLogger) LogClassification(block models.FencedBlock, kind models.Classification) {}
func (n *NoOpLogger) LogPlanned(block models.FencedBlock, kind models.Classification) {}
func (n *NoOpLogger) LogOutcome(outcome models.VerificationOutcome) {}
func (n *NoOpLogger) LogAbort(outcome models.VerificationOutcome) {}
func (n *NoOpLogger) LogSummary(report *models.Report) {}
