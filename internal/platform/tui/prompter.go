package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/console-flappy/internal/games/flappy"
)

// Mode selects how the Prompter talks to the player.
type Mode string

// Prompt modes
const (
	ModeAuto Mode = "auto" // Bubble Tea on a terminal, plain lines otherwise
	ModeTUI  Mode = "tui"
	ModeLine Mode = "line"
	ModeNone Mode = "none" // Never ask; defaults and "no"
)

// ParseMode converts a flag value to a Mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeTUI:
		return ModeTUI, nil
	case ModeLine:
		return ModeLine, nil
	case ModeNone:
		return ModeNone, nil
	}
	return "", fmt.Errorf("tui: unknown prompt mode %q (valid: auto, tui, line, none)", s)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f any) bool {
	fd, ok := f.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

// Prompter implements flappy.Prompter with Bubble Tea dialogs, or with
// plain line prompts when input is not a terminal.
type Prompter struct {
	mode Mode
	in   io.Reader
	out  io.Writer
	br   *bufio.Reader
}

// NewPrompter creates a prompter reading in and writing out.
// ModeAuto resolves to tui only when in is a terminal.
func NewPrompter(mode Mode, in io.Reader, out io.Writer) *Prompter {
	if mode == ModeAuto || mode == "" {
		mode = ModeLine
		if IsTerminal(in) {
			mode = ModeTUI
		}
	}
	return &Prompter{mode: mode, in: in, out: out}
}

// NewStdPrompter creates a prompter on the process stdin and stdout.
func NewStdPrompter(mode Mode) *Prompter {
	return NewPrompter(mode, os.Stdin, os.Stdout)
}

// Mode returns the resolved mode.
func (p *Prompter) Mode() Mode {
	return p.mode
}

// Tunables asks for the three physics values.
func (p *Prompter) Tunables(defaults flappy.Tunables) (flappy.Tunables, error) {
	switch p.mode {
	case ModeNone:
		return defaults, nil
	case ModeLine:
		return p.lineTunables(defaults)
	}

	final, err := p.run(NewTunablesModel(defaults))
	if err != nil {
		return defaults, err
	}
	m, ok := final.(TunablesModel)
	if !ok || m.Canceled() {
		return defaults, flappy.ErrPromptCanceled
	}
	return m.Result(), nil
}

// Confirm shows a yes/no question.
func (p *Prompter) Confirm(title, message string) (bool, error) {
	switch p.mode {
	case ModeNone:
		return false, nil
	case ModeLine:
		return p.lineConfirm(title, message)
	}

	final, err := p.run(NewConfirmModel(title, message))
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok || m.Canceled() {
		return false, flappy.ErrPromptCanceled
	}
	return m.Answer(), nil
}

// run executes a Bubble Tea program on the prompter's streams.
func (p *Prompter) run(model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: prompt: %w", err)
	}
	return final, nil
}

// reader returns the shared line reader so buffered input survives
// between prompts.
func (p *Prompter) reader() *bufio.Reader {
	if p.br == nil {
		p.br = bufio.NewReader(p.in)
	}
	return p.br
}

// readLine reads one line. io.EOF is returned only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) lineTunables(defaults flappy.Tunables) (flappy.Tunables, error) {
	fmt.Fprintln(p.out, "Welcome to Flappy Bird!")

	values := [fieldCount]*float64{&defaults.JumpVelocity, &defaults.PipeVelocity, &defaults.Gravity}
	for i, v := range values {
		fmt.Fprintf(p.out, "%s (default %s): ", fieldLabels[i], formatFloat(*v))
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return defaults, nil
		}
		if err != nil {
			return defaults, fmt.Errorf("tui: read tunable: %w", err)
		}
		*v = flappy.ParseTunable(line, *v)
	}
	return defaults, nil
}

func (p *Prompter) lineConfirm(title, message string) (bool, error) {
	fmt.Fprintf(p.out, "%s\n%s [Y/n]: ", title, message)
	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("tui: read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

var _ flappy.Prompter = (*Prompter)(nil)
