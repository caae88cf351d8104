package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/docverify/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDiagnostic renders the offending block and the tool's error text.
// Content is printed verbatim between delimiter lines.
func formatDiagnostic(outcome models.VerificationOutcome) string {
	var sb strings.Builder
	sb.WriteString("----- content -----\n")
	sb.WriteString(outcome.Block.Content)
	if !strings.HasSuffix(outcome.Block.Content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("----- diagnostic -----\n")
	if outcome.Diagnostic != "" {
		sb.WriteString(outcome.Diagnostic)
		sb.WriteString("\n")
	}
	sb.WriteString("----------------------\n")
	return sb.String()
}

// summaryLine renders block counts for a finished run.
func summaryLine(report *models.Report) string {
	return fmt.Sprintf("Checked %d files, %d blocks: %d verified, %d skipped, %d failed (%s)",
		report.Files, report.Blocks, report.Verified, report.Skipped, failedCount(report), formatDuration(report.Duration))
}

// verdictLine renders the final one-line verdict of a run.
func verdictLine(report *models.Report) string {
	switch {
	case report.Aborted != nil:
		return fmt.Sprintf("Aborted: query block at %s is not valid", report.Aborted.Block.Location())
	case len(report.Failures) > 0:
		return fmt.Sprintf("%d config block(s) failed validation", len(report.Failures))
	default:
		return "All documentation examples are valid"
	}
}

func failedCount(report *models.Report) int {
	n := len(report.Failures)
	if report.Aborted != nil {
		n++
	}
	return n
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "450ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
