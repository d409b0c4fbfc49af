package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding

	// Filter
	Filter      key.Binding
	ClearFilter key.Binding

	// Sorting, one binding per column in display order
	SortID       key.Binding
	SortName     key.Binding
	SortPlatform key.Binding
	SortCategory key.Binding
	SortFeatures key.Binding

	// Add form
	ToggleForm key.Binding
	HideForm   key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Escape     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload games"),
		),

		// Filter
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter games"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("ctrl+l", "x"),
			key.WithHelp("x/ctrl+l", "Clear filter"),
		),

		// Sorting
		SortID: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort by #"),
		),
		SortName: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort by name"),
		),
		SortPlatform: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sort by platform"),
		),
		SortCategory: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Sort by category"),
		),
		SortFeatures: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Sort by features"),
		),

		// Add form
		// ctrl+t also works inside the form, where "a" is typed text.
		ToggleForm: key.NewBinding(
			key.WithKeys("a", "ctrl+t"),
			key.WithHelp("a/ctrl+t", "Toggle add form"),
		),
		HideForm: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Hide form"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
	}
}

// sortBindings pairs each sort binding with its column key.
func (k keyMap) sortBindings() []key.Binding {
	return []key.Binding{k.SortID, k.SortName, k.SortPlatform, k.SortCategory, k.SortFeatures}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Filter, k.ClearFilter},
		k.sortBindings(),
		{k.ToggleForm, k.NextField, k.PrevField, k.Submit, k.Escape},
		{k.Reload, k.CycleTheme, k.Help, k.Quit},
	}
}
