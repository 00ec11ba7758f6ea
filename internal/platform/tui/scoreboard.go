package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/console-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores     = 100 // Max scores to load
	dateLayout    = "Jan 02 15:04"
	defaultWidth  = 80
	defaultHeight = 24
)

// ScoreSource supplies the rounds shown on the scoreboard.
type ScoreSource interface {
	TopScores(limit int) ([]storage.ScoreEntry, error)
	Stats() (*storage.Stats, error)
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	source   ScoreSource
	scores   []storage.ScoreEntry
	stats    *storage.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model and loads the scores.
func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// scoreColumns returns the column layout for a table of the given width.
func scoreColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Difficulty", Width: 11},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}
	// Extra room goes to the date column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := width - 6 - used; spare > 0 {
		columns[4].Width += min(spare, 6)
	}
	return columns
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(scoreColumns(m.width)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Room for title, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads scores and stats from the source.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	scores, err := m.source.TopScores(maxScores)
	if err != nil {
		m.err = err
		m.updateTableRows()
		return
	}
	m.scores = scores

	stats, err := m.source.Stats()
	if err != nil {
		m.err = err
	} else {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = scoreRow(i, s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// scoreRow formats one entry; rank is zero-based.
func scoreRow(rank int, s storage.ScoreEntry) []string {
	return []string{
		fmt.Sprintf("#%d", rank+1),
		strconv.Itoa(s.Score),
		s.Difficulty,
		formatDuration(s.Duration),
		s.CreatedAt.Local().Format(dateLayout),
	}
}

// formatDuration renders a round length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("FLAPPY BIRD HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(hintStyle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all stored rounds.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Rounds == 0 {
		return ""
	}
	return fmt.Sprintf("Rounds: %d  Best: %d  Average: %.1f  Played: %s",
		m.stats.Rounds, m.stats.HighScore, m.stats.AvgScore, m.stats.PlayTime.Round(time.Second))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.err != nil {
		return errorStyle.Padding(2, 4).Render("Unable to load scores:\n" + m.err.Error())
	}
	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// Scores returns the loaded entries.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsQuitting returns true once the user has closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(source ScoreSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(source, width, height),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: scoreboard: %w", err)
	}
	return nil
}

// FormatScores writes the top scores as a plain table, for output that is
// not a terminal.
func FormatScores(w io.Writer, source ScoreSource, limit int) error {
	scores, err := source.TopScores(limit)
	if err != nil {
		return fmt.Errorf("tui: format scores: %w", err)
	}
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded yet.")
		return err
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "SCORE", "DIFFICULTY", "TIME", "DATE")
	for i, s := range scores {
		t.Row(scoreRow(i, s)...)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	stats, err := source.Stats()
	if err != nil {
		return fmt.Errorf("tui: format scores: %w", err)
	}
	_, err = fmt.Fprintf(w, "%d rounds, best %d, average %.1f\n", stats.Rounds, stats.HighScore, stats.AvgScore)
	return err
}
