package ui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/prefs"
	"github.com/five82/gamedex/internal/state"
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Engine         *state.Engine
	FilterDebounce time.Duration
	ThemeName      string
	PrefsPath      string
	SessionPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	engine      *state.Engine
	keys        keyMap
	debounce    time.Duration
	prefsPath   string
	sessionPath string

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Filter input; filterSeq tags debounce ticks so only the newest applies
	filterInput   textinput.Model
	filterFocused bool
	filterSeq     int

	// Add form
	form     addForm
	formOpen bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	engine := opts.Engine
	if engine == nil {
		engine = state.New(nil)
	}

	debounce := opts.FilterDebounce
	if debounce <= 0 {
		debounce = DefaultFilterDebounce
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath = prefs.SessionPath()
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "Filter by name, platform, category or features"
	filter.CharLimit = 120

	m := Model{
		ctx:         ctx,
		engine:      engine,
		keys:        DefaultKeyMap(),
		debounce:    debounce,
		prefsPath:   prefsPath,
		sessionPath: sessionPath,
		theme:       GetTheme(themeName),
		filterInput: filter,
		form:        newAddForm(),
	}
	if prefs.LoadSession(sessionPath).AddFormOpen {
		m.formOpen = true
		m.form.focus(fieldName)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reload()}
	if m.formOpen {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.filterInput.Width = maxInt(msg.Width-6, 10)
		return m, nil

	case loadedMsg:
		err := m.engine.FinishLoad(msg.token, msg.records, msg.err)
		switch {
		case errors.Is(err, state.ErrStaleLoad):
			log.Printf("discarded stale load %d", msg.token)
		case err != nil:
			log.Printf("load failed: %v", err)
		default:
			log.Printf("loaded %d games", m.engine.Len())
		}
		return m, nil

	case submittedMsg:
		if msg.err != nil {
			log.Printf("add %q failed: %v", msg.name, msg.err)
		}
		return m.handleSubmitted(msg)

	case filterTickMsg:
		if msg.seq == m.filterSeq {
			m.engine.SetFilter(m.filterInput.Value())
		}
		return m, nil
	}

	// Forward remaining messages (cursor blink) to whichever input has focus.
	var cmd tea.Cmd
	switch {
	case m.filterFocused:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case m.formOpen:
		m.form.inputs[m.form.focusIdx], cmd = m.form.inputs[m.form.focusIdx].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey routes keyboard input to the focused element, then to global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.filterFocused {
		return m.handleFilterKey(msg)
	}
	if m.formOpen {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				log.Printf("save prefs: %v", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Filter):
		m.filterFocused = true
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilter()
		return m, nil

	case key.Matches(msg, m.keys.ToggleForm):
		cmd := m.setFormOpen(!m.formOpen)
		return m, cmd
	}

	for i, binding := range m.keys.sortBindings() {
		if key.Matches(msg, binding) {
			m.engine.SetSort(catalog.SortKeys[i])
			return m, nil
		}
	}

	return m, nil
}

// handleFilterKey edits the filter text. Every edit schedules a debounced apply;
// enter applies immediately and esc leaves the input with its text intact.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		m.clearFilter()
		return m, nil
	case "enter":
		m.filterSeq++
		m.engine.SetFilter(m.filterInput.Value())
		m.filterFocused = false
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.filterFocused = false
		m.filterInput.Blur()
		return m, nil
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() == before {
		return m, cmd
	}
	m.filterSeq++
	return m, tea.Batch(cmd, filterTickCmd(m.debounce, m.filterSeq))
}

// clearFilter empties the input and the engine filter at once, cancelling any
// pending debounce tick.
func (m *Model) clearFilter() {
	m.filterSeq++
	m.filterInput.SetValue("")
	m.engine.SetFilter("")
}

// setFormOpen opens or closes the add form and records the choice for the session.
func (m *Model) setFormOpen(open bool) tea.Cmd {
	m.formOpen = open
	var cmd tea.Cmd
	if open {
		cmd = m.form.focus(m.form.focusIdx)
	} else {
		m.form.blur()
	}
	if err := prefs.SaveSession(m.sessionPath, prefs.Session{AddFormOpen: open}); err != nil {
		log.Printf("save session: %v", err)
	}
	return cmd
}

// reload starts a load. The token is issued here, on the update loop, so the
// newest reload always wins regardless of which response arrives first.
func (m Model) reload() tea.Cmd {
	token := m.engine.BeginLoad()
	return loadCmd(m.ctx, m.engine, token)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.filterFocused || m.filterInput.Value() != "" {
		b.WriteString(m.renderFilter())
		b.WriteString("\n")
	}

	b.WriteString(m.renderTable(Project(m.engine)))

	if m.formOpen {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	} else if m.form.noticeKind != noticeNone {
		b.WriteString("\n")
		b.WriteString(m.renderNotice())
	}

	return b.String()
}

// Messages

type loadedMsg struct {
	token   state.Token
	records []catalog.Record
	err     error
}

type submittedMsg struct {
	name string
	err  error
}

type filterTickMsg struct {
	seq int
}

// Commands

func loadCmd(ctx context.Context, engine *state.Engine, token state.Token) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		records, err := engine.Fetch(ctx)
		return loadedMsg{token: token, records: records, err: err}
	}
}

func submitCmd(ctx context.Context, engine *state.Engine, cand catalog.Candidate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		return submittedMsg{name: cand.Name, err: engine.Submit(ctx, cand)}
	}
}

func filterTickCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return filterTickMsg{seq: seq}
	})
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
