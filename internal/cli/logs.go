package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/gamedex/internal/app"
	"github.com/five82/gamedex/internal/logtail"
)

// LogsOptions holds flags for the logs command.
type LogsOptions struct {
	Lines int
	Grep  string
}

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsOptions{}

	cmd := &cobra.Command{
		Use:           "logs",
		Short:         "Print the end of the TUI log file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(rootOpts, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVarP(&opts.Grep, "grep", "g", "", "only show lines containing this text")

	return cmd
}

func runLogs(rootOpts *RootOptions, opts *LogsOptions, out io.Writer) error {
	if opts.Lines < 0 {
		return NewExitError(ExitInvalid, fmt.Sprintf("invalid --lines %d: must be 0 or more", opts.Lines))
	}
	cfg, err := app.LoadConfig(rootOpts.appOptions())
	if err != nil {
		return WrapExitError(ExitFailure, "startup", err)
	}

	// Filter before trimming so --grep searches the whole file.
	limit := opts.Lines
	if opts.Grep != "" {
		limit = 0
	}
	lines, err := logtail.Read(cfg.LogFile, limit)
	if err != nil {
		return WrapExitError(ExitFailure, "read log", err)
	}
	lines = logtail.Match(lines, opts.Grep)
	if opts.Lines > 0 && len(lines) > opts.Lines {
		lines = lines[len(lines)-opts.Lines:]
	}

	if len(lines) == 0 {
		fmt.Fprintf(out, "No log entries in %s\n", cfg.LogFile)
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
