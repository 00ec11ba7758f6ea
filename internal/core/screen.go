package core

import (
	"fmt"
	"strings"
)

// Blank is the glyph a cleared cell holds.
const Blank = ' '

// Cell is one character position of the frame buffer.
type Cell struct {
	Glyph rune
	Attr  Attr
}

// Offset maps a (row, col) pair to its index in a row-major buffer of the
// given width. No bounds checking is done here.
func Offset(row, col, width int) int {
	return row*width + col
}

// FrameBuffer is a flat, row-major character grid holding the next frame.
// The engine owns it; games receive it for the duration of a render call.
type FrameBuffer struct {
	width  int
	height int
	cells  []Cell
}

// NewFrameBuffer allocates a width×height buffer of blank cells.
func NewFrameBuffer(width, height int) *FrameBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("core: invalid frame buffer size %dx%d", width, height))
	}
	b := &FrameBuffer{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	b.Clear()
	return b
}

// Width returns the buffer width in cells.
func (b *FrameBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in cells.
func (b *FrameBuffer) Height() int {
	return b.height
}

// Len returns width×height.
func (b *FrameBuffer) Len() int {
	return len(b.cells)
}

// Cells exposes the backing slice for flushing to a display.
// Callers must not retain it across frames.
func (b *FrameBuffer) Cells() []Cell {
	return b.cells
}

// Clear resets every cell to a blank glyph with zero attributes.
func (b *FrameBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Glyph: Blank}
	}
}

// InBounds reports whether (row, col) addresses a cell of the buffer.
func (b *FrameBuffer) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Set places a glyph at the given position.
// Out-of-bounds coordinates are silently ignored.
func (b *FrameBuffer) Set(row, col int, glyph rune, attr Attr) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[Offset(row, col, b.width)] = Cell{Glyph: glyph, Attr: attr}
}

// At returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (b *FrameBuffer) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Cell{Glyph: Blank}
	}
	return b.cells[Offset(row, col, b.width)]
}

// DrawText writes text as consecutive cells starting at (row, col).
// Writing runs on row-major without wrapping or clipping, so text that runs
// past the last column continues on the next row. Text that runs past the end
// of the buffer panics.
func (b *FrameBuffer) DrawText(text string, row, col int, attr Attr) {
	offset := Offset(row, col, b.width)
	for _, r := range text {
		if offset < 0 || offset >= len(b.cells) {
			panic(fmt.Sprintf("core: text %q at (%d,%d) overruns %dx%d buffer", text, row, col, b.width, b.height))
		}
		b.cells[offset] = Cell{Glyph: r, Attr: attr}
		offset++
	}
}

// DrawTextCentered draws text centered horizontally on the given row.
// The column is clamped to the row so short buffers never overrun.
func (b *FrameBuffer) DrawTextCentered(text string, row int, attr Attr) {
	n := len([]rune(text))
	col := Clamp((b.width-n)/2, 0, Max(b.width-n, 0))
	b.DrawText(text, row, col, attr)
}

// Row returns the glyphs of the given row as a string.
func (b *FrameBuffer) Row(row int) string {
	if row < 0 || row >= b.height {
		return strings.Repeat(" ", b.width)
	}
	start := Offset(row, 0, b.width)
	runes := make([]rune, b.width)
	for i, c := range b.cells[start : start+b.width] {
		runes[i] = c.Glyph
	}
	return string(runes)
}

// String converts the buffer to text, one line per row.
func (b *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow(b.width*b.height + b.height)

	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(b.Row(y))
	}
	return sb.String()
}
