package ui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/state"
)

// Placeholder texts, one of which replaces the table body when there is
// nothing to show.
const (
	MsgLoading   = "Loading games..."
	MsgEmpty     = "No games found. Be the first to add one!"
	MsgNoResults = "No results."

	loadErrorPrefix = "Error loading games: "
)

// columnLabels are in display order and line up with catalog.SortKeys.
var columnLabels = []string{"#", "Name", "Platform", "Category", "Notable Features"}

// Grid is one frame of table content, projected from the engine.
type Grid struct {
	Headers     []string
	Rows        [][]string
	Placeholder string
	ActiveCol   int
	Visible     int
	Total       int
}

// Project derives the visible records and converts them to display cells.
// When Placeholder is set, Rows is empty.
func Project(e *state.Engine) Grid {
	derived := e.Derive()
	key, dir := e.Sort()

	g := Grid{
		Headers:   Headers(key, dir),
		ActiveCol: columnIndex(key),
		Visible:   len(derived),
		Total:     e.Len(),
	}
	g.Placeholder = Placeholder(e, len(derived))
	if g.Placeholder != "" {
		return g
	}
	g.Rows = make([][]string, 0, len(derived))
	for i, rec := range derived {
		g.Rows = append(g.Rows, Cells(i, rec))
	}
	return g
}

// Placeholder picks the single message shown instead of data rows, or "" when
// rows should be painted.
func Placeholder(e *state.Engine, visible int) string {
	err := e.LastError()
	switch {
	case !e.Loaded() && (e.Loading() || err == nil):
		return MsgLoading
	case err != nil:
		return loadErrorPrefix + sanitize(loadReason(err))
	case e.Len() == 0:
		return MsgEmpty
	case visible == 0:
		return MsgNoResults
	}
	return ""
}

// Headers returns the column labels with a direction marker on the sorted column.
func Headers(key catalog.SortKey, dir catalog.SortDir) []string {
	active := columnIndex(key)
	out := make([]string, len(columnLabels))
	for i, label := range columnLabels {
		out[i] = label
		if i != active {
			continue
		}
		if dir == catalog.Descending {
			out[i] += " ▼"
		} else {
			out[i] += " ▲"
		}
	}
	return out
}

// Cells renders rec as sanitized display cells. index is the zero-based
// position in the derived sequence and is shown 1-based.
func Cells(index int, rec catalog.Record) []string {
	return []string{
		strconv.Itoa(index + 1),
		sanitize(rec.Name),
		sanitize(rec.Platform),
		sanitize(rec.Category),
		sanitize(rec.NotableFeatures),
	}
}

func columnIndex(key catalog.SortKey) int {
	for i, k := range catalog.SortKeys {
		if k == key {
			return i
		}
	}
	return 0
}

func loadReason(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Reason()
	}
	return err.Error()
}

// renderTable paints the grid with the theme's table styles.
func (m Model) renderTable(g Grid) string {
	styles := m.theme.Styles()

	featuresMax := featuresLimit
	if m.width > 0 && m.width < LayoutCompactWidth {
		featuresMax = compactFeaturesLimit
	}
	limits := []int{0, nameLimit, platformLimit, categoryLimit, featuresMax}

	rows := g.Rows
	if g.Placeholder != "" {
		rows = [][]string{{"", g.Placeholder, "", "", ""}}
	} else {
		rows = make([][]string, len(g.Rows))
		for i, cells := range g.Rows {
			clipped := make([]string, len(cells))
			for c, cell := range cells {
				clipped[c] = truncate(cell, limits[c])
			}
			rows[i] = clipped
		}
	}

	placeholderStyle := styles.MutedText.Padding(0, 1)
	if g.Placeholder != "" && m.engine.LastError() != nil {
		placeholderStyle = styles.DangerText.Padding(0, 1)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor())).
		Headers(g.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && col == g.ActiveCol:
				return styles.TableActiveHeader
			case row == table.HeaderRow:
				return styles.TableHeader
			case g.Placeholder != "":
				return placeholderStyle
			case row%2 == 1:
				return styles.TableStripe
			default:
				return styles.TableCell
			}
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.String()
}
