package flappy

import (
	"math/rand"

	"github.com/vovakirdan/console-flappy/internal/config"
	"github.com/vovakirdan/console-flappy/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	Width    int     // Body width in columns
	Velocity float64 // Leftward speed in cells per second
	X        float64 // Exact horizontal position of the left edge
	Col      int     // X rounded to the nearest column
	GapSize  int     // Height of the passable gap
	GapStart int     // Row where the gap starts (top of gap)
	Scored   bool    // Whether the bird has passed this pipe
}

// Advance moves the pipe left by Velocity*dt.
func (p *Pipe) Advance(dt float64) {
	p.X -= p.Velocity * dt
	p.Col = core.Round(p.X)
}

// Score marks the pipe scored the first time its right edge is at or left of
// birdCol and reports whether that happened on this call.
func (p *Pipe) Score(birdCol int) bool {
	if p.Scored || p.Col+p.Width > birdCol {
		return false
	}
	p.Scored = true
	return true
}

// InGap reports whether row lies inside the gap.
func (p Pipe) InGap(row int) bool {
	return row >= p.GapStart && row < p.GapStart+p.GapSize
}

// pipePart distinguishes body cells from cap cells when drawing.
type pipePart int

const (
	partBody pipePart = iota
	partCap
)

// eachCell calls fn for every filled cell of the pipe inside a width×height
// screen. Body cells are the pipe's columns on rows outside the gap; caps
// stick out one column on each side on the rows bordering the gap. Drawing
// and collision both walk this enumeration.
func (p Pipe) eachCell(width, height int, fn func(row, col int, part pipePart)) {
	if p.Col+p.Width <= 0 || p.Col >= width {
		return
	}

	topCap := p.GapStart - 1
	bottomCap := p.GapStart + p.GapSize

	for col := p.Col; col < p.Col+p.Width; col++ {
		if col < 0 || col >= width {
			continue
		}
		for row := 0; row < height; row++ {
			if p.InGap(row) {
				continue
			}
			part := partBody
			if row == topCap || row == bottomCap {
				part = partCap
			}
			fn(row, col, part)
		}
	}

	for _, col := range [2]int{p.Col - 1, p.Col + p.Width} {
		if col < 0 || col >= width {
			continue
		}
		for _, row := range [2]int{topCap, bottomCap} {
			if row < 0 || row >= height {
				continue
			}
			fn(row, col, partCap)
		}
	}
}

// Occupies reports whether the cell (row, col) is filled by the pipe.
func (p Pipe) Occupies(row, col, width, height int) bool {
	hit := false
	p.eachCell(width, height, func(r, c int, _ pipePart) {
		if r == row && c == col {
			hit = true
		}
	})
	return hit
}

// PipeField owns the ordered pipe collection. Pipes are kept left to right.
type PipeField struct {
	pipes []Pipe
	rng   *rand.Rand
	cfg   config.FlappyPipes
}

// NewPipeField creates an empty field drawing gap positions from rng.
func NewPipeField(cfg config.FlappyPipes, rng *rand.Rand) *PipeField {
	return &PipeField{
		pipes: make([]Pipe, 0, cfg.Count),
		rng:   rng,
		cfg:   cfg,
	}
}

// Seed replaces the collection with Count pipes, the first at startCol and
// each next one Width+Spacing further right.
func (f *PipeField) Seed(startCol int, velocity float64) {
	f.pipes = f.pipes[:0]
	col := startCol
	for i := 0; i < f.cfg.Count; i++ {
		f.pipes = append(f.pipes, f.newPipe(col, velocity))
		col += f.cfg.Width + f.cfg.Spacing
	}
}

// Advance moves every pipe.
func (f *PipeField) Advance(dt float64) {
	for i := range f.pipes {
		f.pipes[i].Advance(dt)
	}
}

// Score marks pipes the bird has passed and returns how many were newly
// passed.
func (f *PipeField) Score(birdCol int) int {
	passed := 0
	for i := range f.pipes {
		if f.pipes[i].Score(birdCol) {
			passed++
		}
	}
	return passed
}

// Recycle replaces every leading pipe whose column is below the recycle
// threshold with a new pipe placed after the rightmost one. The collection
// size never changes. It returns the number of pipes replaced.
func (f *PipeField) Recycle(velocity float64) int {
	recycled := 0
	for len(f.pipes) > 0 && f.pipes[0].Col < f.cfg.RecycleBelow {
		maxCol := f.maxCol()
		f.pipes = append(f.pipes[:0], f.pipes[1:]...)
		f.pipes = append(f.pipes, f.newPipe(maxCol+f.cfg.Width+f.cfg.Spacing, velocity))
		recycled++
	}
	return recycled
}

// Collides reports whether any pipe fills the cell (row, col).
func (f *PipeField) Collides(row, col, width, height int) bool {
	for _, p := range f.pipes {
		if p.Occupies(row, col, width, height) {
			return true
		}
	}
	return false
}

// Pipes returns the current list of pipes.
func (f *PipeField) Pipes() []Pipe {
	return f.pipes
}

// Len returns the number of pipes.
func (f *PipeField) Len() int {
	return len(f.pipes)
}

func (f *PipeField) maxCol() int {
	maxCol := f.pipes[0].Col
	for _, p := range f.pipes[1:] {
		maxCol = core.Max(maxCol, p.Col)
	}
	return maxCol
}

// newPipe creates a pipe at col with a random gap.
func (f *PipeField) newPipe(col int, velocity float64) Pipe {
	return Pipe{
		Width:    f.cfg.Width,
		Velocity: velocity,
		X:        float64(col),
		Col:      col,
		GapSize:  f.between(f.cfg.MinGapSize, f.cfg.MaxGapSize),
		GapStart: f.between(f.cfg.MinGapStart, f.cfg.MaxGapStart),
	}
}

// between returns a uniform integer in [lo, hi].
func (f *PipeField) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Intn(hi-lo+1)
}
