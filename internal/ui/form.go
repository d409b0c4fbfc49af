package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gamedex/internal/catalog"
)

// Inline form messages.
const (
	msgFillAllFields = "Please fill in all fields."
	addErrorPrefix   = "Error adding game: "
)

// Field order in the add form.
const (
	fieldName = iota
	fieldPlatform
	fieldCategory
	fieldFeatures
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Platform", "Category", "Notable features"}

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeError
	noticeSuccess
)

// addForm holds the add-game inputs and the last inline message.
type addForm struct {
	inputs     [fieldCount]textinput.Model
	focusIdx   int
	notice     string
	noticeKind noticeKind
	submitting bool
}

func newAddForm() addForm {
	var f addForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs[i] = ti
	}
	return f
}

// focus moves the cursor to field idx, wrapping in both directions.
func (f *addForm) focus(idx int) tea.Cmd {
	idx = ((idx % fieldCount) + fieldCount) % fieldCount
	f.focusIdx = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *addForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f addForm) candidate() catalog.Candidate {
	return catalog.Candidate{
		Name:            f.inputs[fieldName].Value(),
		Platform:        f.inputs[fieldPlatform].Value(),
		Category:        f.inputs[fieldCategory].Value(),
		NotableFeatures: f.inputs[fieldFeatures].Value(),
	}
}

func (f *addForm) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.focus(fieldName)
}

func (f *addForm) setError(msg string) {
	f.notice = msg
	f.noticeKind = noticeError
}

func (f *addForm) setSuccess(msg string) {
	f.notice = msg
	f.noticeKind = noticeSuccess
}

// handleFormKey processes input while the add form has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.HideForm):
		cmd := m.setFormOpen(false)
		return m, cmd

	case key.Matches(msg, m.keys.NextField):
		cmd := m.form.focus(m.form.focusIdx + 1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.form.focus(m.form.focusIdx - 1)
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focusIdx], cmd = m.form.inputs[m.form.focusIdx].Update(msg)
	return m, cmd
}

// submitForm validates synchronously and only issues the insert command when
// every field is present.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	valid, err := m.engine.Validate(m.form.candidate())
	if err != nil {
		m.form.setError(msgFillAllFields)
		return m, nil
	}
	m.form.submitting = true
	m.form.notice = ""
	m.form.noticeKind = noticeNone
	return m, submitCmd(m.ctx, m.engine, valid)
}

// handleSubmitted applies the insert outcome. On success the inputs reset and
// the collection is reloaded; on failure the entered values stay put.
func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	if msg.err != nil {
		m.form.setError(addErrorPrefix + sanitize(insertReason(msg.err)))
		return m, nil
	}
	m.form.setSuccess(`"` + sanitize(msg.name) + `" added successfully! Thank you!`)
	cmd := m.form.reset()
	if !m.formOpen {
		m.form.blur()
		cmd = nil
	}
	return m, tea.Batch(cmd, m.reload())
}

func insertReason(err error) string {
	var insertErr *catalog.InsertError
	if errors.As(err, &insertErr) {
		return insertErr.Reason()
	}
	return err.Error()
}

// renderForm renders the add form panel.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Add a game"))
	b.WriteString("\n")
	for i, input := range m.form.inputs {
		label := styles.MutedText.Render(padRight(fieldLabels[i]+":", 18))
		if i == m.form.focusIdx {
			label = styles.AccentText.Render(padRight(fieldLabels[i]+":", 18))
		}
		b.WriteString(label)
		b.WriteString(styles.Input.Render(input.View()))
		b.WriteString("\n")
	}

	switch {
	case m.form.submitting:
		b.WriteString(styles.InfoText.Render("Saving..."))
	case m.form.noticeKind == noticeError:
		b.WriteString(styles.DangerText.Render(m.form.notice))
	case m.form.noticeKind == noticeSuccess:
		b.WriteString(styles.SuccessText.Render(m.form.notice))
	default:
		b.WriteString(styles.FaintText.Render("tab next field  enter submit  esc close"))
	}

	return styles.FocusPanel.Render(b.String())
}
