package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/console-flappy/internal/games/flappy"
)

// Form field indexes
const (
	fieldJump = iota
	fieldPipe
	fieldGravity
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Jump velocity",
	"Pipe velocity",
	"Gravity",
}

// TunablesModel is a small form that edits the three physics values.
// Blank or invalid fields fall back to the defaults.
type TunablesModel struct {
	defaults flappy.Tunables
	inputs   [fieldCount]textinput.Model
	focus    int
	keys     FormKeyMap
	help     help.Model
	done     bool
	canceled bool
}

// NewTunablesModel creates the form with defaults shown as placeholders.
func NewTunablesModel(defaults flappy.Tunables) TunablesModel {
	m := TunablesModel{
		defaults: defaults,
		keys:     DefaultFormKeyMap(),
		help:     help.New(),
	}
	for i, def := range m.defaultValues() {
		ti := textinput.New()
		ti.Placeholder = formatFloat(def)
		ti.CharLimit = 12
		ti.Width = 14
		ti.Prompt = "> "
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m TunablesModel) defaultValues() [fieldCount]float64 {
	return [fieldCount]float64{
		m.defaults.JumpVelocity,
		m.defaults.PipeVelocity,
		m.defaults.Gravity,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init starts the cursor blinking.
func (m TunablesModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m TunablesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.canceled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			if m.focus == fieldCount-1 {
				m.done = true
				return m, tea.Quit
			}
			return m, m.setFocus(m.focus + 1)

		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)

		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves the cursor to field i.
func (m *TunablesModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// View renders the form.
func (m TunablesModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to Flappy Bird!"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Leave a field blank to keep the default."))
	b.WriteString("\n\n")

	defs := m.defaultValues()
	for i := range m.inputs {
		label := fmt.Sprintf("%-14s", fieldLabels[i])
		b.WriteString(labelStyle.Render(label))
		b.WriteString(m.inputs[i].View())
		if v := m.inputs[i].Value(); v != "" && flappy.ParseTunable(v, -1) < 0 {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  invalid, using %s", formatFloat(defs[i]))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return boxStyle.Render(b.String())
}

// Result returns the chosen values.
func (m TunablesModel) Result() flappy.Tunables {
	defs := m.defaultValues()
	return flappy.Tunables{
		JumpVelocity: flappy.ParseTunable(m.inputs[fieldJump].Value(), defs[fieldJump]),
		PipeVelocity: flappy.ParseTunable(m.inputs[fieldPipe].Value(), defs[fieldPipe]),
		Gravity:      flappy.ParseTunable(m.inputs[fieldGravity].Value(), defs[fieldGravity]),
	}
}

// Done reports whether the form was submitted.
func (m TunablesModel) Done() bool {
	return m.done
}

// Canceled reports whether the form was dismissed.
func (m TunablesModel) Canceled() bool {
	return m.canceled
}
