package migrations

import "embed"

// FS contains embedded SQLite migrations for the local games store.
//
//go:embed *.sql
var FS embed.FS
