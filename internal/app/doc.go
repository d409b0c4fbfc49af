// Package app is the composition root for gamedex.
//
// # Overview
//
// It turns configuration into running parts: it picks the collection backend,
// builds the view-state engine with the configured collation locale, and hands
// both to the TUI. The CLI commands reuse the same helpers so list and add
// behave exactly like their interactive counterparts.
//
// # Startup Sequence
//
//  1. LoadConfig reads ~/.config/gamedex/config.toml, applies GAMEDEX_*
//     variables and command-line overrides, then validates the backend
//  2. Run redirects the standard logger to the log file (the TUI owns the
//     terminal from here on)
//  3. OpenCollection creates the Supabase client or opens the SQLite store
//  4. NewEngine wraps the collection; the first load is issued by the UI so
//     the loading placeholder is visible while it is in flight
//  5. ui.Run blocks until the user quits or the context is cancelled
//
// # Backends
//
//   - supabase: hosted PostgREST table, requires supabase_url
//   - sqlite: local database file, created and migrated on first use
//
// Both satisfy catalog.Collection, so nothing above this package knows which
// one is in use.
package app
