package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for docverify
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docverify [flags] <validator-binary>",
		Short: "Verify configuration and query examples in documentation",
		Long: `Docverify checks that the code examples in a documentation tree are valid.

It extracts fenced code blocks from Markdown pages and verifies them against
ground truth: toml blocks are written to a scratch file and checked with
"<validator-binary> --users|--config <scratch> configcheck", postgresql blocks
are parsed with the PostgreSQL grammar.

A rejected config block is printed and the scan continues; the run exits 1 at
the end. A query block that fails to parse stops the run immediately.

Configuration is loaded from .docverify.yaml if present.
CLI flags override configuration file settings.

Examples:
  docverify ./target/release/pgdog
  docverify --docs site/docs --timeout 30s ./pgdog
  docverify --dry-run ./pgdog                 # Classify blocks only
  docverify --log-dir .docverify/logs ./pgdog # Also write a run log
  docverify collect --out ci/tmp              # Export config blocks`,
		Version: Version,
		Args:    cobra.ExactArgs(1),
		RunE:    verifyCommand,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().String("timeout", "", "Maximum time per validator invocation (e.g., 30s, 2m; 0 = no limit)")
	cmd.Flags().Bool("dry-run", false, "Classify blocks without invoking any verifier")

	cmd.AddCommand(NewCollectCommand())

	return cmd
}

// addCommonFlags registers the flags shared by every command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: ./.docverify.yaml)")
	cmd.Flags().String("docs", "", "Documentation root to scan (default: docs)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
}
