// Package console implements engine.Console on a tcell screen.
//
// The play rectangle is centered in the terminal. Terminal events are read by
// a single goroutine and buffered, so Pending and ReadEvents never block.
package console

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// eventBuffer is the capacity of the translated key event queue.
const eventBuffer = 64

// ErrTooSmall is returned by Open when the terminal cannot fit the play area.
var ErrTooSmall = errors.New("console: terminal too small")

// ErrNotOpen is returned by operations on a console that is not open.
var ErrNotOpen = errors.New("console: not open")

// Console is a tcell-backed engine.Console.
type Console struct {
	screen tcell.Screen

	mu      sync.Mutex
	width   int
	height  int
	originX int
	originY int
	open    bool

	events chan core.KeyEvent
	stop   chan struct{}
	done   chan struct{}
}

// New wraps an existing screen. The screen is initialized by Open.
func New(screen tcell.Screen) *Console {
	return &Console{screen: screen}
}

// NewTerminal creates a console on the process terminal.
func NewTerminal() (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("console: create screen: %w", err)
	}
	return New(screen), nil
}

// Open initializes the screen, sets the title, hides the cursor and centers
// a width×height play area.
func (c *Console) Open(title string, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return errors.New("console: already open")
	}
	if err := c.screen.Init(); err != nil {
		return fmt.Errorf("console: init screen: %w", err)
	}

	termW, termH := c.screen.Size()
	if termW < width || termH < height {
		c.screen.Fini()
		return fmt.Errorf("%w: need %dx%d, have %dx%d", ErrTooSmall, width, height, termW, termH)
	}

	c.screen.SetTitle(title)
	c.screen.HideCursor()
	c.screen.SetStyle(tcell.StyleDefault)
	c.screen.Clear()

	c.width = width
	c.height = height
	c.center(termW, termH)

	c.events = make(chan core.KeyEvent, eventBuffer)
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.open = true

	go c.pollLoop()
	return nil
}

// center places the play area in the middle of a termW×termH terminal.
// Callers hold mu.
func (c *Console) center(termW, termH int) {
	c.originX = core.Max(0, (termW-c.width)/2)
	c.originY = core.Max(0, (termH-c.height)/2)
}

// pollLoop translates terminal events until Close.
func (c *Console) pollLoop() {
	defer close(c.done)

	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			key, ok := translateKey(ev)
			if !ok {
				continue
			}
			select {
			case c.events <- key:
			case <-c.stop:
				return
			default:
				// Queue full, drop the key rather than stall the reader
			}

		case *tcell.EventResize:
			c.mu.Lock()
			w, h := ev.Size()
			c.center(w, h)
			c.mu.Unlock()
			c.screen.Clear()
			c.screen.Sync()
		}

		select {
		case <-c.stop:
			return
		default:
		}
	}
}

// Write copies the cells into the screen at the play area origin and shows
// the result.
func (c *Console) Write(cells []core.Cell, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return ErrNotOpen
	}
	if len(cells) != width*height {
		return fmt.Errorf("console: %d cells do not fill %dx%d", len(cells), width, height)
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := cells[core.Offset(row, col, width)]
			c.screen.SetContent(c.originX+col, c.originY+row, cell.Glyph, nil, Style(cell.Attr))
		}
	}
	c.screen.Show()
	return nil
}

// Pending returns the number of buffered key events.
func (c *Console) Pending() (int, error) {
	if !c.isOpen() {
		return 0, ErrNotOpen
	}
	return len(c.events), nil
}

// ReadEvents appends all buffered key events to dst without blocking.
func (c *Console) ReadEvents(dst []core.KeyEvent) ([]core.KeyEvent, error) {
	if !c.isOpen() {
		return dst, ErrNotOpen
	}
	for {
		select {
		case ev := <-c.events:
			dst = append(dst, ev)
		default:
			return dst, nil
		}
	}
}

// Suspend hands the terminal back to line-mode I/O.
func (c *Console) Suspend() error {
	if !c.isOpen() {
		return ErrNotOpen
	}
	if err := c.screen.Suspend(); err != nil {
		return fmt.Errorf("console: suspend: %w", err)
	}
	return nil
}

// Resume reclaims the terminal after Suspend and repaints it. Keys typed
// while suspended are discarded.
func (c *Console) Resume() error {
	if !c.isOpen() {
		return ErrNotOpen
	}
	if err := c.screen.Resume(); err != nil {
		return fmt.Errorf("console: resume: %w", err)
	}
	c.screen.HideCursor()
	c.screen.Sync()

	for {
		select {
		case <-c.events:
		default:
			return nil
		}
	}
}

// Close restores the terminal. Closing a console that is not open is a no-op.
func (c *Console) Close() error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil
	}
	c.open = false
	c.mu.Unlock()

	close(c.stop)
	c.screen.ShowCursor(-1, -1)
	c.screen.Fini()
	<-c.done
	return nil
}

// Origin returns the terminal coordinates of the play area's top-left cell.
func (c *Console) Origin() (x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.originX, c.originY
}

func (c *Console) isOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
