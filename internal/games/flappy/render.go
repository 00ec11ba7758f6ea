package flappy

import (
	"fmt"

	"github.com/vovakirdan/console-flappy/internal/core"
	"github.com/vovakirdan/console-flappy/internal/engine"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

var (
	birdAttr = core.Fg(core.ColorBrightYellow) | core.AttrBold
	pipeAttr = core.Fg(core.ColorGreen)
	capAttr  = core.Fg(core.ColorBrightGreen)
	hudAttr  = core.Fg(core.ColorBrightWhite)
)

// titleCol is the column the title screen text starts at when it fits.
const titleCol = 40

// titleLines are the title screen rows and their text.
var titleLines = []struct {
	row  int
	text string
}{
	{11, "Welcome to Flappy Bird!"},
	{12, "Press the spacebar to jump."},
	{13, "Press 'q' or 'ESC' to quit."},
	{14, "Press any of the above keys to play."},
	{17, "Developed by Tristan Rachman :)"},
}

// Render draws the pipes, the bird and the HUD.
func (g *Game) Render(buf *core.FrameBuffer) error {
	for _, p := range g.pipes.Pipes() {
		drawPipe(buf, p)
	}

	buf.Set(g.bird.Row, g.bird.Col, g.birdGlyph, birdAttr)

	g.drawHUD(buf)
	return nil
}

// drawPipe renders a single pipe. Cells outside the buffer are skipped.
func drawPipe(buf *core.FrameBuffer, p Pipe) {
	p.eachCell(buf.Width(), buf.Height(), func(row, col int, part pipePart) {
		switch {
		case part == partBody:
			buf.Set(row, col, PipeChar, pipeAttr)
		case row < p.GapStart:
			buf.Set(row, col, PipeCapTop, capAttr)
		default:
			buf.Set(row, col, PipeCapBottom, capAttr)
		}
	})
}

// drawHUD writes the frame rate on the left of the top row and the score on
// the right.
func (g *Game) drawHUD(buf *core.FrameBuffer) {
	putText(buf, fmt.Sprintf("FPS: %.0f", g.fps), 0, 1)

	score := fmt.Sprintf("Score: %d  Best: %d", g.score, core.Max(g.best, g.score))
	putText(buf, score, 0, buf.Width()-len(score)-1)
}

// drawTitle fills the buffer with the title screen.
func (g *Game) drawTitle(h engine.Host) {
	h.Buffer().Clear()
	for _, line := range titleLines {
		text := line.text
		if len(text) > h.Width() {
			text = text[:h.Width()]
		}
		row := core.Clamp(line.row, 0, h.Height()-1)
		col := core.Clamp(titleCol, 0, h.Width()-len(text))
		h.DrawText(text, row, col)
	}
}

// putText writes text on one row, dropping runes that fall outside the buffer.
func putText(buf *core.FrameBuffer, text string, row, col int) {
	for _, r := range text {
		buf.Set(row, col, r, hudAttr)
		col++
	}
}
