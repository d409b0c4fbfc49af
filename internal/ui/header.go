package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHeader renders the status bar: logo, counts, sort state and filter.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	visible := len(m.engine.Derive())
	total := m.engine.Len()
	sortKey, dir := m.engine.Sort()

	parts := []string{
		bg.Render("gamedex", styles.Logo),
		bg.Render(fmt.Sprintf("%d/%d games", visible, total), styles.Text),
		bg.Render(fmt.Sprintf("sort %s %s", sortKey, dir), styles.MutedText),
	}
	if f := m.engine.Filter(); f != "" {
		parts = append(parts, bg.Render("filter "+truncate(sanitize(f), 30), styles.AccentText))
	}
	switch {
	case m.engine.Loading():
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	case m.engine.LastError() != nil:
		parts = append(parts, bg.Render("Load failed", styles.DangerText))
	}

	content := strings.Join(parts, sep)
	return m.theme.Styles().Header.
		Width(maxInt(m.width, LayoutMinWidth)).
		Render(content)
}

// renderCommandBar lists the bindings that apply to the focused element.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var bindings []key.Binding
	switch {
	case m.filterFocused:
		bindings = []key.Binding{
			key.NewBinding(key.WithHelp("enter", "Apply")),
			key.NewBinding(key.WithHelp("esc", "Done")),
			key.NewBinding(key.WithHelp("ctrl+l", "Clear")),
		}
	case m.formOpen:
		bindings = []key.Binding{m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.HideForm, m.keys.Escape}
	default:
		bindings = []key.Binding{
			m.keys.Filter, m.keys.ClearFilter,
			key.NewBinding(key.WithHelp("1-5", "Sort")),
			m.keys.ToggleForm, m.keys.Reload, m.keys.Help, m.keys.Quit,
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, bg.Render("<"+h.Key+">", styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return bg.FillLine(" "+bg.Join(parts, "  "), maxInt(m.width, LayoutMinWidth))
}

// renderFilter renders the filter input line.
func (m Model) renderFilter() string {
	styles := m.theme.Styles()
	style := styles.Panel
	if m.filterFocused {
		style = styles.FocusPanel
	}
	return style.Width(maxInt(m.width-2, 20)).Render(m.filterInput.View())
}

// renderNotice shows the last add result when the form has been closed.
func (m Model) renderNotice() string {
	styles := m.theme.Styles()
	if m.form.noticeKind == noticeError {
		return styles.DangerText.Render(m.form.notice)
	}
	return styles.SuccessText.Render(m.form.notice)
}
