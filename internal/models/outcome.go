package models

import "time"

// VerificationOutcome is the result of verifying one classified block
type VerificationOutcome struct {
	Block          FencedBlock    // The block that was verified
	Classification Classification // Strategy the block was verified with
	Passed         bool           // True when the validator accepted the block
	Suppressed     bool           // Query failed to parse but matched the allowlist
	Diagnostic     string         // Validator stderr or parser error text
	Duration       time.Duration  // Time taken to verify
}

// Report is the aggregate result of one verification run
type Report struct {
	RunID    string                // Unique identifier of the run
	Files    int                   // Documentation files processed
	Blocks   int                   // Fenced blocks extracted
	Verified int                   // Blocks handed to a verifier
	Skipped  int                   // Blocks classified as Skip
	Failures []VerificationOutcome // Failed config blocks, in document order
	Aborted  *VerificationOutcome  // Query failure that stopped the run, if any
	Duration time.Duration         // Total run time
}

// Failed reports whether the run found any failure.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0 || r.Aborted != nil
}

// ExitCode returns the process exit status for the report.
func (r *Report) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}
