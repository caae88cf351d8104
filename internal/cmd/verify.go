package cmd

import (
	"fmt"
	"os/exec"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/docverify/internal/config"
	"github.com/harrison/docverify/internal/filelock"
	"github.com/harrison/docverify/internal/logger"
	"github.com/harrison/docverify/internal/report"
	"github.com/harrison/docverify/internal/verifier"
)

// scratchName is the file name of a per-run scratch file.
const scratchName = "docverify_config_test.toml"

// verifyCommand implements the root command: verify every block under the
// docs root against the validator binary in args[0].
func verifyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	binary := args[0]
	if !cfg.DryRun {
		// Fail before scanning when the validator cannot be started at all
		if binary, err = exec.LookPath(binary); err != nil {
			return &verifier.ValidatorError{Binary: args[0], Err: err}
		}
	}

	runID := uuid.New().String()
	log, closeLog, err := newRunLogger(cmd, cfg, runID)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := report.Options{RunID: runID, Logger: log}
	if !cfg.DryRun {
		scratch, err := newScratch(cfg)
		if err != nil {
			return err
		}
		if err := scratch.Acquire(); err != nil {
			scratch.Release()
			return fmt.Errorf("failed to acquire scratch file: %w", err)
		}
		defer scratch.Release()

		opts.Verifier = &verifier.Verifier{
			Config: verifier.NewConfigVerifier(binary, scratch, cfg.Timeout),
			Query:  verifier.NewQueryVerifier(verifier.DefaultAllowlist().With(cfg.Allowlist...)),
		}
	}

	_, err = report.NewRunner(cfg, opts).Run(cmd.Context())
	return err
}

// newScratch returns the fixed scratch file, or a per-run one when
// unique_scratch is set.
func newScratch(cfg *config.Config) (*filelock.Scratch, error) {
	if cfg.UniqueScratch {
		return filelock.NewUniqueScratch(scratchName)
	}
	return filelock.NewScratch(cfg.ScratchPath), nil
}

// newRunLogger builds the console logger and, when log_dir is set, a file
// logger next to it. The returned func closes the file logger.
func newRunLogger(cmd *cobra.Command, cfg *config.Config, runID string) (report.Logger, func(), error) {
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLogger, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	return logger.MultiLogger{console, fileLogger}, func() { fileLogger.Close() }, nil
}
