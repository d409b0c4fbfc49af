// Package ui provides the gamedex terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a *state.Engine and never keeps
// its own copy of the games: every frame is projected from Engine.Derive, so
// what is painted is always a function of the authoritative set and the view
// configuration.
//
// Each key press maps to one engine call (SetFilter, SetSort, a load, a
// submit). Bubble Tea repaints after every Update, which gives the "every
// change is followed by a render" rule for free.
//
// # Package Structure
//
//   - app.go: Model, Options, Update routing, messages and commands, Run
//   - form.go: add-game form inputs, validation and submit handling
//   - table.go: Grid projection, placeholders and the lipgloss table
//   - header.go: status bar, command bar, filter line
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: colors and background-safe rendering
//
// # Asynchronous Work
//
// Network calls run inside tea.Cmd functions and only call the engine's
// read-only halves (Fetch, Submit). Results come back as messages and are
// applied on the update loop:
//
//	reload()      -> BeginLoad on the loop, Fetch in the command
//	loadedMsg     -> FinishLoad; older tokens are discarded
//	submittedMsg  -> inline message, then reload() on success
//
// # Filter Debounce
//
// Typing into the filter schedules a filterTickMsg tagged with a sequence
// number. Only the tick carrying the newest number calls SetFilter, so a burst
// of keystrokes produces one re-derive after the configured quiet period.
// Clearing the filter applies at once and invalidates pending ticks.
//
// # Untrusted Text
//
// Every stored field passes through sanitize before it is styled: escape
// sequences are stripped and control characters replaced, so a record cannot
// repaint or move the terminal cursor.
//
// # Session State
//
// Whether the add form is open is written to the session file on every
// toggle and restored by New.
package ui
