// Package enginetest provides an in-memory Console for driving the engine and
// games in tests without a terminal.
package enginetest

import (
	"errors"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// ErrClosed is returned by a Console used after Close.
var ErrClosed = errors.New("enginetest: console closed")

// Console is a scripted engine.Console. Each Poll of the engine consumes one
// batch of queued key events; an empty batch yields a frame with no input.
type Console struct {
	Title         string
	Width, Height int

	Opened    bool
	Closed    bool
	Suspended int // Suspend calls
	Resumed   int // Resume calls
	Writes    int // Successful Write calls

	// Last holds a copy of the most recent frame written.
	Last []core.Cell

	// Failure injection
	OpenErr    error
	PendingErr error
	ReadErr    error
	WriteErr   error
	FailWrite  int // Fail the Nth Write (1-based) with WriteErr; 0 fails every write when WriteErr is set

	batches [][]core.KeyEvent
}

// New returns an empty console.
func New() *Console {
	return &Console{}
}

// Queue appends one batch of events delivered by a single Poll.
func (c *Console) Queue(events ...core.KeyEvent) {
	c.batches = append(c.batches, events)
}

// QueueKeys queues one batch per rune, each a key-down record.
func (c *Console) QueueKeys(keys ...rune) {
	for _, r := range keys {
		c.Queue(core.KeyDown(r))
	}
}

// QueueIdle queues n batches with no events.
func (c *Console) QueueIdle(n int) {
	for i := 0; i < n; i++ {
		c.Queue()
	}
}

// Remaining returns the number of batches not yet consumed.
func (c *Console) Remaining() int {
	return len(c.batches)
}

// Open implements engine.Console.
func (c *Console) Open(title string, width, height int) error {
	if c.OpenErr != nil {
		return c.OpenErr
	}
	c.Title = title
	c.Width = width
	c.Height = height
	c.Opened = true
	return nil
}

// Write implements engine.Console.
func (c *Console) Write(cells []core.Cell, width, height int) error {
	if c.Closed {
		return ErrClosed
	}
	if c.WriteErr != nil && (c.FailWrite == 0 || c.Writes+1 == c.FailWrite) {
		return c.WriteErr
	}
	if len(cells) != width*height {
		return errors.New("enginetest: write rectangle does not match cell count")
	}
	c.Last = append(c.Last[:0], cells...)
	c.Writes++
	return nil
}

// Pending implements engine.Console.
func (c *Console) Pending() (int, error) {
	if c.PendingErr != nil {
		return 0, c.PendingErr
	}
	if len(c.batches) == 0 {
		return 0, nil
	}
	if len(c.batches[0]) == 0 {
		c.batches = c.batches[1:]
		return 0, nil
	}
	return len(c.batches[0]), nil
}

// ReadEvents implements engine.Console.
func (c *Console) ReadEvents(dst []core.KeyEvent) ([]core.KeyEvent, error) {
	if c.ReadErr != nil {
		return dst, c.ReadErr
	}
	if len(c.batches) == 0 {
		return dst, nil
	}
	dst = append(dst, c.batches[0]...)
	c.batches = c.batches[1:]
	return dst, nil
}

// Suspend implements engine.Console.
func (c *Console) Suspend() error {
	c.Suspended++
	return nil
}

// Resume implements engine.Console.
func (c *Console) Resume() error {
	c.Resumed++
	return nil
}

// Close implements engine.Console.
func (c *Console) Close() error {
	c.Closed = true
	return nil
}

// Row returns the glyphs of one row of the last frame.
func (c *Console) Row(row int) string {
	if c.Width == 0 || row < 0 || (row+1)*c.Width > len(c.Last) {
		return ""
	}
	runes := make([]rune, c.Width)
	for i, cell := range c.Last[row*c.Width : (row+1)*c.Width] {
		runes[i] = cell.Glyph
	}
	return string(runes)
}

// Cell returns one cell of the last frame.
func (c *Console) Cell(row, col int) core.Cell {
	i := core.Offset(row, col, c.Width)
	if i < 0 || i >= len(c.Last) {
		return core.Cell{Glyph: core.Blank}
	}
	return c.Last[i]
}
