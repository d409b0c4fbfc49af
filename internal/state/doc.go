// Package state provides the view-state engine behind the gamedex table.
//
// # Overview
//
// The Engine owns two things: the authoritative record set (replaced wholesale
// by every successful load) and the view configuration (filter text, sort key
// and direction). Everything the UI shows is computed by Derive from those two
// inputs; there is no cached intermediate view that could drift.
//
//	Collection.List ──> authoritative set ──> filter ──> stable sort ──> Derive()
//	                          ▲
//	Collection.Insert ──> Load (full reload, never a local append)
//
// # Load Semantics
//
//	// Success case: replace the set
//	engine.Load(ctx)
//	→ records = <listed>
//	→ LastError() = nil
//
//	// Error case: keep old data, record error
//	engine.Load(ctx)
//	→ records = <unchanged> (empty before the first success)
//	→ LastError() = *catalog.LoadError
//
// Load is BeginLoad + Fetch + FinishLoad. Hosts with an event loop, such as the
// Bubble Tea UI, call the three steps separately: BeginLoad and FinishLoad on
// the loop, Fetch inside a command. Each BeginLoad returns a larger Token, and
// FinishLoad drops results older than the newest applied one, so two
// overlapping reloads can never leave the older response on screen.
//
// # Derive
//
// Filtering keeps a record when any of name, platform, category or notable
// features contains the filter text under Unicode case folding. Sorting is
// stable: id compares numerically, text columns compare case-insensitively
// with a collator for the configured locale. Descending flips the comparator,
// and ties keep their authoritative order in both directions, so descending is
// the exact reverse of ascending only when no two keys compare equal.
//
// # Concurrency Model
//
// The engine has no locks. All mutating methods must run on one goroutine.
// Fetch and Submit only read the immutable collection handle and may run
// elsewhere.
package state
