package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the features column is narrowed.
	LayoutCompactWidth = 100

	// LayoutMinWidth is the width assumed before the first WindowSizeMsg.
	LayoutMinWidth = 80
)

// Column limits (in runes) applied before handing cells to the table.
const (
	nameLimit     = 40
	platformLimit = 20
	categoryLimit = 20
	featuresLimit = 60

	compactFeaturesLimit = 28
)

// Timing constants.
const (
	// DefaultFilterDebounce is the quiet period after the last filter keystroke.
	DefaultFilterDebounce = 200 * time.Millisecond

	// FetchTimeout bounds a single load or insert issued from the UI.
	FetchTimeout = 15 * time.Second
)
