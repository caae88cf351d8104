package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/docverify/internal/config"
)

// loadConfig loads the configuration file, applies the flags the user set and
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		// Load from explicit config path
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// Load from default ./.docverify.yaml
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only flags the user set)
	var docsPtr *string
	if cmd.Flags().Changed("docs") {
		docs, _ := cmd.Flags().GetString("docs")
		docsPtr = &docs
	}

	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &level
	}

	var logDirPtr *string
	if f := cmd.Flags().Lookup("log-dir"); f != nil && f.Changed {
		logDir := f.Value.String()
		logDirPtr = &logDir
	}

	var timeoutPtr *time.Duration
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		timeout, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", f.Value.String(), err)
		}
		timeoutPtr = &timeout
	}

	var dryRunPtr *bool
	if f := cmd.Flags().Lookup("dry-run"); f != nil && f.Changed {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		dryRunPtr = &dryRun
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(docsPtr, timeoutPtr, logLevelPtr, logDirPtr, dryRunPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
