package cli

import (
	"log"

	"github.com/five82/gamedex/internal/app"
	"github.com/five82/gamedex/internal/state"
)

// openEngine loads configuration and returns an engine over the configured
// backend. The release function closes the backend.
func openEngine(opts *RootOptions) (*state.Engine, func(), error) {
	cfg, err := app.LoadConfig(opts.appOptions())
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "startup", err)
	}
	coll, closeColl, err := app.OpenCollection(cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "startup", err)
	}
	log.Printf("using %s backend", cfg.Backend)

	release := func() {
		if err := closeColl(); err != nil {
			log.Printf("close collection: %v", err)
		}
	}
	return app.NewEngine(cfg, coll), release, nil
}
