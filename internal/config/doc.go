// Package config loads gamedex settings from a TOML file and the environment.
//
// # Resolution Order
//
// Load builds a Config in three passes:
//
//  1. Read the TOML file at the given path, or ~/.config/gamedex/config.toml
//     when the path is empty. A missing file is not an error.
//  2. Apply GAMEDEX_* environment variables on top of the file values.
//  3. Trim every string and fill blank or non-positive fields with defaults.
//
// # Fields
//
//	backend = "supabase"                 # or "sqlite"
//	supabase_url = "https://x.supabase.co"
//	supabase_key = "anon-key"
//	table = "games"
//	sqlite_path = "~/.local/share/gamedex/games.db"
//	sqlite_seed = "~/games-seed.toml"     # optional, applied once per database
//	filter_debounce_ms = 200
//	locale = "en"
//	request_timeout_seconds = 10
//	log_file = "~/.local/state/gamedex/gamedex.log"
//
// Each key has an environment counterpart named GAMEDEX_<KEY>, for example
// GAMEDEX_SUPABASE_URL. Paths accept a leading tilde.
//
// # Errors
//
// Load fails on unreadable files, malformed TOML ("parse config") and
// environment values that do not convert to the field type ("parse env").
// Validate is separate so commands that never open a backend (help, version)
// can still run with an incomplete configuration.
package config
