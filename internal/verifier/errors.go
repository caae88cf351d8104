package verifier

import (
	"errors"
	"fmt"
)

// ErrValidatorTimeout indicates the validator binary did not exit in time.
var ErrValidatorTimeout = errors.New("validator timed out")

// ValidatorError reports that the validator binary could not produce a verdict
// (it could not be started, or it was killed). It is fatal to a run.
type ValidatorError struct {
	Binary string
	Err    error
}

// Error implements the error interface for ValidatorError.
func (e *ValidatorError) Error() string {
	return fmt.Sprintf("validator %s: %v", e.Binary, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidatorError) Unwrap() error {
	return e.Err
}
