// Package engine runs a console game: it owns the frame buffer and the input
// queue, drives the input→update→render loop and hands control to a Game
// through a small set of hooks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// inputReserve is the initial capacity of the raw event and command queues.
const inputReserve = 10

// ErrNotInitialized is returned by Run before a successful Initialize.
var ErrNotInitialized = errors.New("engine: not initialized")

// Engine drives a Game on a Console.
type Engine struct {
	title   string
	width   int
	height  int
	console Console
	game    Game
	keymap  KeyMap
	logger  *log.Logger
	now     func() time.Time
	idle    time.Duration

	buf      *core.FrameBuffer
	events   []core.KeyEvent
	commands []core.InputCommand
	fps      float64
	running  bool
	state    State
	rounds   int
	closed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle and failure messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock replaces the wall clock used to measure frame time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(e *Engine) {
		e.keymap = k
	}
}

// WithIdleInterval sets how long Host.Idle sleeps. Zero disables sleeping.
func WithIdleInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.idle = d
	}
}

// New creates an engine for a width×height console. Nothing is acquired
// until Initialize.
func New(title string, width, height int, console Console, game Game, opts ...Option) *Engine {
	e := &Engine{
		title:   title,
		width:   width,
		height:  height,
		console: console,
		game:    game,
		keymap:  DefaultKeyMap(),
		logger:  log.New(io.Discard),
		now:     time.Now,
		idle:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize acquires the console and allocates the frame buffer and the
// input queue.
func (e *Engine) Initialize() error {
	if e.state != StateUninitialized {
		return fmt.Errorf("engine: initialize called in state %s", e.state)
	}
	if e.width <= 0 || e.height <= 0 {
		return fmt.Errorf("engine: invalid console size %dx%d", e.width, e.height)
	}

	if err := e.console.Open(e.title, e.width, e.height); err != nil {
		return fmt.Errorf("engine: open console: %w", err)
	}

	e.buf = core.NewFrameBuffer(e.width, e.height)
	e.events = make([]core.KeyEvent, 0, inputReserve)
	e.commands = make([]core.InputCommand, 0, inputReserve)
	e.state = StateInitialized

	// Start from a blank display
	if err := e.Flush(); err != nil {
		return fmt.Errorf("engine: clear console: %w", err)
	}

	e.logger.Info("console initialized", "title", e.title, "width", e.width, "height", e.height)
	return nil
}

// Run calls Begin once, then plays rounds until End declines a replay.
// Input, update and render failures abort the run with an error.
func (e *Engine) Run(ctx context.Context) error {
	if e.state != StateInitialized {
		return ErrNotInitialized
	}

	if err := e.game.Begin(e); err != nil {
		e.state = StateTerminated
		if errors.Is(err, ErrQuit) {
			e.logger.Info("quit from title screen")
			return nil
		}
		return fmt.Errorf("engine: begin: %w", err)
	}

	for {
		e.game.Reset()
		e.running = true
		e.state = StateRunning
		e.rounds++
		e.logger.Debug("round started", "round", e.rounds)

		if err := e.runRound(ctx); err != nil {
			e.state = StateTerminated
			e.logger.Error("run aborted", "err", err)
			return err
		}

		e.state = StateRoundEnded
		again := e.game.End(e)
		e.logger.Debug("round ended", "round", e.rounds, "again", again)
		if again != PlayAgainYes {
			break
		}
	}

	e.state = StateTerminated
	return nil
}

// runRound loops while the game reports the round as running.
func (e *Engine) runRound(ctx context.Context) error {
	lastFrame := e.now()

	for e.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		timeNow := e.now()
		dt := timeNow.Sub(lastFrame).Seconds()
		lastFrame = timeNow
		e.fps = 0
		if dt > 0 {
			e.fps = 1.0 / dt
		}

		// Clear any stale data
		e.buf.Clear()

		if err := e.Poll(); err != nil {
			return fmt.Errorf("engine: input: %w", err)
		}

		running, err := e.game.Update(Tick{DT: dt, FPS: e.fps, Commands: e.commands})
		if err != nil {
			return fmt.Errorf("engine: update: %w", err)
		}
		e.running = running

		if err := e.game.Render(e.buf); err != nil {
			return fmt.Errorf("engine: render: %w", err)
		}
		if err := e.Flush(); err != nil {
			return fmt.Errorf("engine: render: %w", err)
		}
	}
	return nil
}

// Poll drains all pending key events and maps them to commands. The command
// list is reset on every call, including when reading fails.
func (e *Engine) Poll() error {
	e.commands = e.commands[:0]
	e.events = e.events[:0]

	n, err := e.console.Pending()
	if err != nil {
		return fmt.Errorf("count pending events: %w", err)
	}
	if n == 0 {
		return nil
	}

	events, err := e.console.ReadEvents(e.events)
	if err != nil {
		e.events = e.events[:0]
		return fmt.Errorf("read events: %w", err)
	}
	e.events = events

	for _, ev := range e.events {
		cmd := e.keymap.Map(ev)
		if cmd == core.CommandNone || cmd == core.CommandUndefined {
			continue
		}
		e.commands = append(e.commands, cmd)
	}
	return nil
}

// Commands returns the commands read by the last Poll.
func (e *Engine) Commands() []core.InputCommand {
	return e.commands
}

// Flush writes the whole frame buffer to the console in one call.
func (e *Engine) Flush() error {
	if e.buf == nil {
		return ErrNotInitialized
	}
	if err := e.console.Write(e.buf.Cells(), e.width, e.height); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}

// DrawText writes text into the frame buffer starting at (row, col). The
// text is neither wrapped nor clipped; running past the end of the buffer
// panics.
func (e *Engine) DrawText(text string, row, col int) {
	e.buf.DrawText(text, row, col, core.Fg(core.ColorWhite))
}

// Buffer returns the frame buffer.
func (e *Engine) Buffer() *core.FrameBuffer {
	return e.buf
}

// Width returns the console width in cells.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the console height in cells.
func (e *Engine) Height() int {
	return e.height
}

// FPS returns the frame rate measured on the last frame.
func (e *Engine) FPS() float64 {
	return e.fps
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Rounds returns how many rounds have started.
func (e *Engine) Rounds() int {
	return e.rounds
}

// Idle sleeps for the configured idle interval.
func (e *Engine) Idle() {
	if e.idle > 0 {
		time.Sleep(e.idle)
	}
}

// Suspend releases the console while fn runs and restores it afterwards.
func (e *Engine) Suspend(fn func() error) error {
	if err := e.console.Suspend(); err != nil {
		return fmt.Errorf("engine: suspend console: %w", err)
	}

	fnErr := fn()

	if err := e.console.Resume(); err != nil {
		return errors.Join(fnErr, fmt.Errorf("engine: resume console: %w", err))
	}
	return fnErr
}

// Close blanks the display and releases the console. It is a no-op for an
// engine that was never initialized.
func (e *Engine) Close() error {
	if e.state == StateUninitialized || e.closed {
		return nil
	}
	e.closed = true

	e.buf.Clear()
	if err := e.Flush(); err != nil {
		e.logger.Warn("unable to flush console", "err", err)
	}

	e.state = StateTerminated
	if err := e.console.Close(); err != nil {
		return fmt.Errorf("engine: close console: %w", err)
	}
	return nil
}

var _ Host = (*Engine)(nil)
