package engine

import (
	"errors"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// ErrQuit is returned by Game.Begin when the player quits before the first
// round. Run treats it as a clean exit.
var ErrQuit = errors.New("engine: quit requested")

// PlayAgain is the decision a game returns when a round ends.
type PlayAgain int

const (
	PlayAgainYes PlayAgain = iota
	PlayAgainNo
)

// String returns "yes" or "no".
func (p PlayAgain) String() string {
	if p == PlayAgainYes {
		return "yes"
	}
	return "no"
}

// Tick carries the per-frame data handed to Game.Update.
type Tick struct {
	DT       float64             // Seconds since the previous frame
	FPS      float64             // 1/DT, 0 on the first frame of a round
	Commands []core.InputCommand // Commands polled this frame, valid until the next poll
}

// Game is the contract the engine drives. The engine calls Begin once, then
// Reset at the start of every round, Update and Render every frame while the
// round runs, and End when it stops.
type Game interface {
	// Reset puts the game into the state of a fresh round.
	Reset()

	// Begin runs the title screen. It may poll input and flush frames
	// through the host. Returning ErrQuit ends the program cleanly.
	Begin(h Host) error

	// Update advances the simulation. It returns false once the round is over.
	Update(t Tick) (running bool, err error)

	// Render draws the current state into buf. The buffer is cleared before
	// each frame and flushed by the engine after Render returns.
	Render(buf *core.FrameBuffer) error

	// End presents the round result and decides whether to play again.
	End(h Host) PlayAgain
}

// Host is the part of the engine a game can use outside Update and Render.
type Host interface {
	Width() int
	Height() int

	// Buffer returns the frame buffer for drawing screens such as the title.
	Buffer() *core.FrameBuffer

	// DrawText writes text into the frame buffer with the default attribute.
	DrawText(text string, row, col int)

	// Poll drains pending input into Commands.
	Poll() error

	// Commands returns the commands read by the last Poll.
	Commands() []core.InputCommand

	// Flush writes the frame buffer to the console.
	Flush() error

	// Idle yields between polls of a wait loop.
	Idle()

	// Suspend releases the console to line-mode I/O while fn runs.
	Suspend(fn func() error) error

	// FPS returns the frame rate measured on the last frame.
	FPS() float64
}
