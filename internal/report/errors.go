package report

import (
	"errors"
	"fmt"

	"github.com/harrison/docverify/internal/models"
)

var (
	// ErrQueryInvalid is wrapped by QueryValidationError.
	ErrQueryInvalid = errors.New("query block failed to parse")

	// ErrConfigFailures is returned, wrapped with a count, when a run
	// finished with at least one rejected config block.
	ErrConfigFailures = errors.New("config block(s) failed validation")
)

// DiscoveryError reports that a documentation file could not be found or read.
type DiscoveryError struct {
	Path string // File or directory being discovered
	Err  error  // Underlying error
}

// Error implements the error interface for DiscoveryError.
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// QueryValidationError stops a run at the first query block that is not
// valid grammar and is not allowlisted.
type QueryValidationError struct {
	Outcome models.VerificationOutcome
}

// Error implements the error interface for QueryValidationError.
func (e *QueryValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Outcome.Block.Location(), ErrQueryInvalid, e.Outcome.Diagnostic)
}

// Unwrap returns ErrQueryInvalid.
func (e *QueryValidationError) Unwrap() error {
	return ErrQueryInvalid
}

// ExitCode maps the result of Runner.Run to a process exit status:
// 0 when every verified block passed, 1 otherwise.
func ExitCode(report *models.Report, err error) int {
	if err != nil || report == nil {
		return 1
	}
	return report.ExitCode()
}
