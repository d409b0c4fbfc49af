package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/prefs"
	"github.com/five82/gamedex/internal/state"
)

type fakeCollection struct {
	mu        sync.Mutex
	records   []catalog.Record
	listErr   error
	insertErr error
	lists     int
	inserted  []catalog.Candidate
}

func (f *fakeCollection) List(context.Context) ([]catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]catalog.Record(nil), f.records...), nil
}

func (f *fakeCollection) Insert(_ context.Context, c catalog.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, c)
	f.records = append(f.records, catalog.Record{
		ID:              int64(len(f.records) + 1),
		Name:            c.Name,
		Platform:        c.Platform,
		Category:        c.Category,
		NotableFeatures: c.NotableFeatures,
	})
	return nil
}

func twoGames() *fakeCollection {
	return &fakeCollection{records: []catalog.Record{
		{ID: 1, Name: "Pong", Platform: "Arcade", Category: "Sports", NotableFeatures: "Two paddles"},
		{ID: 2, Name: "Tetris", Platform: "GB", Category: "Puzzle", NotableFeatures: "Falling blocks"},
	}}
}

type testEnv struct {
	sessionPath string
	prefsPath   string
}

func newTestModel(t *testing.T, coll catalog.Collection) (Model, testEnv) {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		sessionPath: filepath.Join(dir, "session.toml"),
		prefsPath:   filepath.Join(dir, "prefs.toml"),
	}
	return newModelAt(t, coll, env), env
}

func newModelAt(t *testing.T, coll catalog.Collection, env testEnv) Model {
	t.Helper()
	m := New(Options{
		Engine:         state.New(coll),
		FilterDebounce: 10 * time.Millisecond,
		PrefsPath:      env.prefsPath,
		SessionPath:    env.sessionPath,
	})
	return update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// collect runs cmd and returns the messages it produces, expanding batches.
// Commands that block (cursor blink, ticks) are abandoned after a short wait.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// pump feeds load and submit results from cmd back into the model until no
// more arrive.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case loadedMsg, submittedMsg:
			next, follow := m.Update(msg)
			m = pump(t, next.(Model), follow)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func loaded(t *testing.T, coll catalog.Collection) (Model, testEnv) {
	t.Helper()
	m, env := newTestModel(t, coll)
	return pump(t, m, m.Init()), env
}

func TestView_LoadingBeforeFirstLoad(t *testing.T) {
	m, _ := newTestModel(t, twoGames())
	if got := m.View(); !strings.Contains(got, MsgLoading) {
		t.Fatalf("View() missing loading placeholder:\n%s", got)
	}
}

func TestInit_LoadsAndRendersRows(t *testing.T) {
	m, _ := loaded(t, twoGames())

	if m.engine.Len() != 2 {
		t.Fatalf("engine.Len = %d, want 2", m.engine.Len())
	}
	view := m.View()
	for _, want := range []string{"Pong", "Tetris", "2/2 games", "# ▲"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestView_LoadErrorReplacesBody(t *testing.T) {
	coll := twoGames()
	m, _ := loaded(t, coll)

	coll.listErr = errors.New("network down")
	m, cmd := press(t, m, "r")
	m = pump(t, m, cmd)

	view := m.View()
	if !strings.Contains(view, "Error loading games: network down") {
		t.Fatalf("View() missing error placeholder:\n%s", view)
	}
	if strings.Contains(view, "Tetris") {
		t.Fatalf("View() still paints rows under a load error:\n%s", view)
	}
	if m.engine.Len() != 2 {
		t.Fatalf("engine.Len = %d, want previous set kept", m.engine.Len())
	}
}

func TestView_EmptyCollection(t *testing.T) {
	m, _ := loaded(t, &fakeCollection{})
	view := m.View()
	if !strings.Contains(view, MsgEmpty) {
		t.Fatalf("View() missing empty placeholder:\n%s", view)
	}
	if strings.Contains(view, MsgLoading) {
		t.Fatalf("View() shows loading placeholder after load:\n%s", view)
	}
}

func TestFilter_DebounceAppliesNewestTick(t *testing.T) {
	m, _ := loaded(t, twoGames())

	m, _ = press(t, m, "/")
	if !m.filterFocused {
		t.Fatalf("filter not focused after /")
	}
	m = typeText(t, m, "tet")
	if got := m.engine.Filter(); got != "" {
		t.Fatalf("Filter applied before debounce: %q", got)
	}

	m = update(t, m, filterTickMsg{seq: m.filterSeq - 1})
	if got := m.engine.Filter(); got != "" {
		t.Fatalf("stale tick applied filter %q", got)
	}

	m = update(t, m, filterTickMsg{seq: m.filterSeq})
	if got := m.engine.Filter(); got != "tet" {
		t.Fatalf("Filter = %q, want tet", got)
	}
	view := m.View()
	if strings.Contains(view, "Pong") || !strings.Contains(view, "Tetris") {
		t.Fatalf("View() not filtered:\n%s", view)
	}
}

func TestFilter_TickCommandCarriesSequence(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "/")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)

	var tick *filterTickMsg
	for _, msg := range collect(cmd) {
		if ft, ok := msg.(filterTickMsg); ok {
			tick = &ft
		}
	}
	if tick == nil {
		t.Fatalf("typing did not schedule a filter tick")
	}
	if tick.seq != m.filterSeq {
		t.Fatalf("tick seq = %d, want %d", tick.seq, m.filterSeq)
	}
}

func TestFilter_EnterAppliesImmediately(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m, _ = press(t, m, "enter")

	if m.filterFocused {
		t.Fatalf("filter still focused after enter")
	}
	if got := m.engine.Filter(); got != "zzz" {
		t.Fatalf("Filter = %q, want zzz", got)
	}
	if view := m.View(); !strings.Contains(view, MsgNoResults) {
		t.Fatalf("View() missing no-results placeholder:\n%s", view)
	}
}

func TestFilter_ClearResetsInputAndEngine(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "/")
	m = typeText(t, m, "pong")
	m, _ = press(t, m, "enter")
	pending := m.filterSeq

	m, _ = press(t, m, "x")
	if m.engine.Filter() != "" || m.filterInput.Value() != "" {
		t.Fatalf("filter not cleared: engine=%q input=%q", m.engine.Filter(), m.filterInput.Value())
	}
	m = update(t, m, filterTickMsg{seq: pending})
	if m.engine.Filter() != "" {
		t.Fatalf("pending tick re-applied old filter")
	}
}

func TestFilter_TypingQDoesNotQuit(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "/")
	_, cmd := press(t, m, "q")
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatalf("typing q into the filter quit the program")
		}
	}
}

func TestSortKeys_ToggleDirection(t *testing.T) {
	m, _ := loaded(t, twoGames())

	m, _ = press(t, m, "2")
	if key, dir := m.engine.Sort(); key != catalog.SortByName || dir != catalog.Ascending {
		t.Fatalf("Sort = %s %s, want name asc", key, dir)
	}
	m, _ = press(t, m, "2")
	if key, dir := m.engine.Sort(); key != catalog.SortByName || dir != catalog.Descending {
		t.Fatalf("Sort = %s %s, want name desc", key, dir)
	}
	if view := m.View(); !strings.Contains(view, "Name ▼") {
		t.Fatalf("View() missing descending indicator:\n%s", view)
	}

	m, _ = press(t, m, "5")
	if key, dir := m.engine.Sort(); key != catalog.SortByNotableFeatures || dir != catalog.Ascending {
		t.Fatalf("Sort = %s %s, want notable_features asc", key, dir)
	}
}

func TestAddForm_ValidationBlocksSubmit(t *testing.T) {
	coll := twoGames()
	m, _ := loaded(t, coll)

	m, _ = press(t, m, "a")
	if !m.formOpen {
		t.Fatalf("form not open after a")
	}
	m = typeText(t, m, "Zelda")
	m, cmd := press(t, m, "tab", "tab", "enter")

	if cmd != nil {
		t.Fatalf("submit with blank fields issued a command")
	}
	if m.form.notice != msgFillAllFields || m.form.noticeKind != noticeError {
		t.Fatalf("notice = %q (%d), want validation message", m.form.notice, m.form.noticeKind)
	}
	if len(coll.inserted) != 0 {
		t.Fatalf("collection received %d inserts, want 0", len(coll.inserted))
	}
	if got := m.form.inputs[fieldName].Value(); got != "Zelda" {
		t.Fatalf("name input = %q, want kept value", got)
	}
}

func fillForm(t *testing.T, m Model, values ...string) Model {
	t.Helper()
	for i, v := range values {
		if i > 0 {
			m, _ = press(t, m, "tab")
		}
		m = typeText(t, m, v)
	}
	return m
}

func TestAddForm_SuccessResetsAndReloads(t *testing.T) {
	coll := twoGames()
	m, _ := loaded(t, coll)
	listsBefore := coll.lists

	m, _ = press(t, m, "a")
	m = fillForm(t, m, "Zelda", "NES", "Adventure", "Open world")
	m, cmd := press(t, m, "enter")
	if !m.form.submitting {
		t.Fatalf("form not marked submitting")
	}
	m = pump(t, m, cmd)

	if len(coll.inserted) != 1 || coll.inserted[0].Name != "Zelda" {
		t.Fatalf("inserted = %+v, want one Zelda", coll.inserted)
	}
	if coll.lists != listsBefore+1 {
		t.Fatalf("lists = %d, want a reload after insert", coll.lists)
	}
	if m.engine.Len() != 3 {
		t.Fatalf("engine.Len = %d, want 3", m.engine.Len())
	}
	want := `"Zelda" added successfully! Thank you!`
	if m.form.notice != want || m.form.noticeKind != noticeSuccess {
		t.Fatalf("notice = %q, want %q", m.form.notice, want)
	}
	for i, in := range m.form.inputs {
		if in.Value() != "" {
			t.Fatalf("input %d = %q, want reset", i, in.Value())
		}
	}
	if m.form.focusIdx != fieldName {
		t.Fatalf("focusIdx = %d, want name field", m.form.focusIdx)
	}
}

func TestAddForm_InsertErrorKeepsValues(t *testing.T) {
	coll := twoGames()
	coll.insertErr = errors.New("permission denied")
	m, _ := loaded(t, coll)
	listsBefore := coll.lists

	m, _ = press(t, m, "a")
	m = fillForm(t, m, "Zelda", "NES", "Adventure", "Open world")
	m, cmd := press(t, m, "enter")
	m = pump(t, m, cmd)

	if want := "Error adding game: permission denied"; m.form.notice != want {
		t.Fatalf("notice = %q, want %q", m.form.notice, want)
	}
	if coll.lists != listsBefore {
		t.Fatalf("failed insert triggered a reload")
	}
	if got := m.form.inputs[fieldFeatures].Value(); got != "Open world" {
		t.Fatalf("features input = %q, want kept value", got)
	}
	if m.form.submitting {
		t.Fatalf("form still submitting after result")
	}
}

func TestAddForm_OpenStatePersistsInSession(t *testing.T) {
	m, env := loaded(t, twoGames())

	m, _ = press(t, m, "a")
	if !prefs.LoadSession(env.sessionPath).AddFormOpen {
		t.Fatalf("session not saved as open")
	}

	reopened := newModelAt(t, twoGames(), env)
	if !reopened.formOpen {
		t.Fatalf("new model did not restore open form")
	}

	m, _ = press(t, m, "esc")
	if m.formOpen {
		t.Fatalf("form still open after esc")
	}
	if prefs.LoadSession(env.sessionPath).AddFormOpen {
		t.Fatalf("session not saved as closed")
	}
}

func TestAddForm_CtrlTToggles(t *testing.T) {
	m, env := loaded(t, twoGames())

	m, _ = press(t, m, "ctrl+t")
	if !m.formOpen {
		t.Fatalf("form not opened by ctrl+t")
	}
	m, _ = press(t, m, "a")
	if !m.formOpen {
		t.Fatalf("typing a inside the form closed it")
	}
	if got := m.form.inputs[fieldName].Value(); got != "a" {
		t.Fatalf("name input = %q, want %q", got, "a")
	}

	m, _ = press(t, m, "ctrl+t")
	if m.formOpen {
		t.Fatalf("form still open after second ctrl+t")
	}
	if prefs.LoadSession(env.sessionPath).AddFormOpen {
		t.Fatalf("session not saved as closed")
	}
	if got := m.form.inputs[fieldName].Value(); got != "a" {
		t.Fatalf("hiding the form dropped input %q", got)
	}
}

func TestAddForm_ShiftTabWraps(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "a", "shift+tab")
	if m.form.focusIdx != fieldFeatures {
		t.Fatalf("focusIdx = %d, want %d", m.form.focusIdx, fieldFeatures)
	}
}

func TestReload_StaleResponseDiscarded(t *testing.T) {
	coll := twoGames()
	m, _ := loaded(t, coll)

	first := m.reload()
	second := m.reload()

	coll.records = coll.records[:1]
	m = pump(t, m, second)
	coll.records = nil
	m = pump(t, m, first)

	if m.engine.Len() != 1 {
		t.Fatalf("engine.Len = %d, want result of the newest load", m.engine.Len())
	}
}

func TestThemeCycle_SavesPrefs(t *testing.T) {
	m, env := loaded(t, twoGames())
	before := m.theme.Name

	m, _ = press(t, m, "T")
	if m.theme.Name == before {
		t.Fatalf("theme did not change")
	}
	p, err := prefs.Load(env.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", p.Theme, m.theme.Name)
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m, _ := loaded(t, twoGames())
	m, _ = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help view missing title:\n%s", view)
	}
	m, _ = press(t, m, "2")
	if m.showHelp {
		t.Fatalf("help still shown")
	}
	if key, _ := m.engine.Sort(); key != catalog.SortByID {
		t.Fatalf("key closing help also changed sort to %s", key)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := loaded(t, twoGames())
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := press(t, m, k)
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", k)
		}
	}
}
