package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/gamedex/internal/catalog"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	Name     string
	Platform string
	Category string
	Features string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the catalog",
		Long: `Insert a game and reload the catalog so the stored id is used.

All four fields are required; blank or whitespace-only values are rejected
before anything is sent to the backend.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, opts, cmd.OutOrStdout(), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "game name")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "platform it runs on")
	cmd.Flags().StringVar(&opts.Category, "category", "", "genre or category")
	cmd.Flags().StringVar(&opts.Features, "features", "", "notable features")

	return cmd
}

func runAdd(rootOpts *RootOptions, opts *AddOptions, out io.Writer, cmd *cobra.Command) error {
	cand, err := catalog.Validate(catalog.Candidate{
		Name:            opts.Name,
		Platform:        opts.Platform,
		Category:        opts.Category,
		NotableFeatures: opts.Features,
	})
	if err != nil {
		return WrapExitError(ExitInvalid, "Please fill in all fields.", err)
	}

	engine, release, err := openEngine(rootOpts)
	if err != nil {
		return err
	}
	defer release()

	err = engine.Add(commandContext(cmd), cand)
	var insertErr *catalog.InsertError
	var loadErr *catalog.LoadError
	switch {
	case errors.As(err, &insertErr):
		return NewExitError(ExitFailure, "Error adding game: "+insertErr.Reason())
	case errors.As(err, &loadErr):
		// The insert went through; only the refresh failed.
		fmt.Fprintf(out, "%q added, but reloading failed\n", cand.Name)
		return WrapExitError(ExitFailure, "Error loading games", err)
	case err != nil:
		return WrapExitError(ExitFailure, "add game", err)
	}

	fmt.Fprintf(out, "\"%s\" added successfully! Thank you!\n", cand.Name)
	fmt.Fprintf(out, "%d games in catalog\n", engine.Len())
	return nil
}
