package flappy

import "github.com/vovakirdan/console-flappy/internal/core"

// Bird is the player. Velocity is positive upwards; rows grow downwards.
type Bird struct {
	Velocity      float64 // Cells per second, positive = up
	RowF          float64 // Exact vertical position
	Row           int     // RowF rounded to the nearest row
	Col           int     // Fixed column
	JumpRequested bool    // Set by input, consumed by the next Step
}

// NewBird places a bird at rest on row in column col.
func NewBird(row, col int) Bird {
	return Bird{RowF: float64(row), Row: row, Col: col}
}

// Step integrates one frame of dt seconds. A pending jump replaces the
// velocity before gravity is applied.
func (b *Bird) Step(dt, jumpVelocity, gravity float64) {
	if b.JumpRequested {
		b.Velocity = jumpVelocity
		b.JumpRequested = false
	}
	b.Velocity -= gravity * dt
	b.RowF -= b.Velocity * dt
	b.Row = core.Round(b.RowF)
}

// OutOfBounds reports whether the bird has left a screen of the given height.
// The top row counts as out.
func (b Bird) OutOfBounds(height int) bool {
	return b.Row <= 0 || b.Row >= height
}
