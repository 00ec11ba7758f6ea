package engine

import "github.com/vovakirdan/console-flappy/internal/core"

// Console is the platform device the engine draws to and reads keys from.
// Implementations own the terminal (or a fake of it); the engine holds one
// for its whole lifetime and releases it with Close.
type Console interface {
	// Open acquires the input and output devices, sets the title, hides the
	// cursor and positions a width×height play area on the display.
	Open(title string, width, height int) error

	// Write transfers a whole width×height row-major rectangle of cells.
	Write(cells []core.Cell, width, height int) error

	// Pending returns the number of raw key events waiting to be read.
	Pending() (int, error)

	// ReadEvents drains every pending event without blocking, appending
	// them to dst.
	ReadEvents(dst []core.KeyEvent) ([]core.KeyEvent, error)

	// Suspend hands the terminal back to line-mode I/O until Resume.
	Suspend() error
	Resume() error

	// Close releases the devices.
	Close() error
}
