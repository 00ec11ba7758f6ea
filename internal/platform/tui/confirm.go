package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a titled yes/no dialog. Yes is selected initially.
type ConfirmModel struct {
	title    string
	message  string
	yes      bool
	keys     ConfirmKeyMap
	help     help.Model
	done     bool
	canceled bool
}

// NewConfirmModel creates a dialog with the given title and message.
func NewConfirmModel(title, message string) ConfirmModel {
	return ConfirmModel{
		title:   title,
		message: message,
		yes:     true,
		keys:    DefaultConfirmKeyMap(),
		help:    help.New(),
	}
}

// Init initializes the dialog.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dialog.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Yes):
		m.yes, m.done = true, true
		return m, tea.Quit
	case key.Matches(km, m.keys.No):
		m.yes, m.done = false, true
		return m, tea.Quit
	case key.Matches(km, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(km, m.keys.Select):
		m.done = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	yes, no := buttonStyle, activeButtonStyle
	if m.yes {
		yes, no = activeButtonStyle, buttonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.message)
	b.WriteString("\n\n")
	b.WriteString(buttons)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return boxStyle.Render(b.String())
}

// Answer returns the selected button.
func (m ConfirmModel) Answer() bool {
	return m.yes
}

// Done reports whether an answer was chosen.
func (m ConfirmModel) Done() bool {
	return m.done
}

// Canceled reports whether the dialog was dismissed.
func (m ConfirmModel) Canceled() bool {
	return m.canceled
}
