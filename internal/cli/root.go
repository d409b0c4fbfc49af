package cli

import (
	"context"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/five82/gamedex/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Backend    string
	LogFile    string
	Verbose    bool
}

func (o *RootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.ConfigPath,
		Backend:    o.Backend,
		LogFile:    o.LogFile,
	}
}

// NewRootCommand creates the root command. Without a subcommand it starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "gamedex",
		Short:         "Browse and grow a catalog of video games",
		Long:          "gamedex lists, filters, sorts and adds games in a hosted or local catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Non-interactive commands log to stderr only when asked; the TUI
			// redirects the logger to its file itself.
			if opts.Verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/gamedex/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "collection backend (supabase|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "log file used while the TUI runs")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr for list and add")

	// Add subcommands
	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))

	return cmd
}

// NewTUICommand creates the tui command, an explicit alias for the root action.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tui",
		Short:         "Open the interactive catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rootOpts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *RootOptions) error {
	return app.Run(commandContext(cmd), opts.appOptions())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
