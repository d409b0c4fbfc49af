package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/state"
	"github.com/five82/gamedex/internal/ui"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ListOptions holds flags for the list command.
type ListOptions struct {
	Filter string
	Sort   string
	Desc   bool
	Format string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog",
		Long: `Load the catalog and print it after filtering and sorting.

The filter is a case-insensitive substring matched against name, platform,
category and notable features. Sort keys: id, name, platform, category,
notable_features.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, cmd.OutOrStdout(), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "only show games containing this text")
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", string(catalog.SortByID), "column to sort by")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	return cmd
}

func runList(rootOpts *RootOptions, opts *ListOptions, out io.Writer, cmd *cobra.Command) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitInvalid, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}
	key, ok := catalog.ParseSortKey(opts.Sort)
	if !ok {
		return NewExitError(ExitInvalid, fmt.Sprintf("invalid sort key %q: must be one of %v", opts.Sort, catalog.SortKeys))
	}

	engine, release, err := openEngine(rootOpts)
	if err != nil {
		return err
	}
	defer release()

	if err := engine.Load(commandContext(cmd)); err != nil {
		return WrapExitError(ExitFailure, "Error loading games", err)
	}
	engine.SetFilter(opts.Filter)
	applySort(engine, key, opts.Desc)

	if opts.Format == "json" {
		return writeJSON(out, engine.Derive())
	}
	_, err = fmt.Fprintln(out, renderPlain(ui.Project(engine)))
	return err
}

// applySort reaches (key, desc) from the engine's default of id ascending using
// only SetSort, the same toggle the TUI uses.
func applySort(e *state.Engine, key catalog.SortKey, desc bool) {
	if key != catalog.SortByID {
		e.SetSort(key)
	}
	if desc {
		e.SetSort(key)
	}
}

func writeJSON(out io.Writer, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// renderPlain prints the grid without colors, for pipes and scripts.
func renderPlain(g ui.Grid) string {
	rows := g.Rows
	if g.Placeholder != "" {
		rows = [][]string{{"", g.Placeholder, "", "", ""}}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %d games", g.Visible, g.Total)
	return b.String()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
