package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/docverify/internal/logger"
	"github.com/harrison/docverify/internal/report"
)

// NewCollectCommand creates the collect command
func NewCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Write every config block to a standalone file",
		Long: `Collect extracts the toml blocks that would be verified and writes each one
to <out>/users_<md5>.toml or <out>/config_<md5>.toml, with the source page and
line number in a comment header. The output directory is emptied first.

No validator is invoked.

Examples:
  docverify collect --out ci/tmp
  docverify collect --docs site/docs --out /tmp/snippets`,
		Args: cobra.NoArgs,
		RunE: collectCommand,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("out", "ci/tmp", "Directory the snippet files are written to")

	return cmd
}

// collectCommand implements the collect command logic
func collectCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")

	runner := report.NewRunner(cfg, report.Options{
		Logger: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	})
	written, err := runner.Collect(cmd.Context(), outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d snippet(s) to %s\n", len(written), outDir)
	return nil
}
