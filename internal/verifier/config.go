package verifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harrison/docverify/internal/models"
)

// Scratch is the staging file a config block is written to before validation.
type Scratch interface {
	Path() string
	Write(content string) error
}

// ConfigVerifier validates config blocks with the external validator binary,
// invoked as "<binary> --users|--config <scratch> configcheck".
type ConfigVerifier struct {
	Binary  string
	Scratch Scratch
	Runner  CommandRunner
	Timeout time.Duration // 0 waits for the validator indefinitely
}

// NewConfigVerifier creates a ConfigVerifier that runs binary through os/exec.
func NewConfigVerifier(binary string, scratch Scratch, timeout time.Duration) *ConfigVerifier {
	return &ConfigVerifier{
		Binary:  binary,
		Scratch: scratch,
		Runner:  &ExecRunner{},
		Timeout: timeout,
	}
}

// ModeFlag returns the validator flag for a config classification.
func ModeFlag(kind models.Classification) string {
	if kind == models.VerifyAsUsersConfig {
		return "--users"
	}
	return "--config"
}

// Args returns the validator arguments for a config classification.
func (v *ConfigVerifier) Args(kind models.Classification) []string {
	return []string{ModeFlag(kind), v.Scratch.Path(), "configcheck"}
}

// Verify stages the block and runs the validator. A rejected block is a
// failed outcome with a nil error; an error means no verdict was reached.
func (v *ConfigVerifier) Verify(ctx context.Context, block models.FencedBlock, kind models.Classification) (models.VerificationOutcome, error) {
	outcome := models.VerificationOutcome{Block: block, Classification: kind}

	if !kind.IsConfig() {
		return outcome, fmt.Errorf("config verifier cannot verify %s block", kind)
	}

	if err := v.Scratch.Write(block.Content); err != nil {
		return outcome, err
	}

	if v.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := v.Runner.Run(ctx, v.Binary, v.Args(kind)...)
	outcome.Duration = time.Since(start)

	if err == nil {
		outcome.Passed = true
		return outcome, nil
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		outcome.Diagnostic = diagnostic(out, exitErr)
		return outcome, nil
	case errors.Is(err, context.DeadlineExceeded):
		return outcome, &ValidatorError{Binary: v.Binary, Err: fmt.Errorf("%w after %v", ErrValidatorTimeout, v.Timeout)}
	default:
		return outcome, &ValidatorError{Binary: v.Binary, Err: err}
	}
}

// diagnostic prefers stderr, falls back to stdout, then to the exit status.
func diagnostic(out CommandOutput, exitErr *ExitError) string {
	if s := strings.TrimSpace(string(out.Stderr)); s != "" {
		return s
	}
	if s := strings.TrimSpace(string(out.Stdout)); s != "" {
		return s
	}
	return fmt.Sprintf("validator rejected the block (%v)", exitErr)
}
