package flappy

import (
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/console-flappy/internal/config"
)

// Tunables are the physics values the player may choose before playing.
// They survive replays.
type Tunables struct {
	JumpVelocity float64
	PipeVelocity float64
	Gravity      float64
}

// TunablesFromConfig returns the configured defaults.
func TunablesFromConfig(p config.FlappyPhysics) Tunables {
	return Tunables{
		JumpVelocity: p.JumpVelocity,
		PipeVelocity: p.PipeVelocity,
		Gravity:      p.Gravity,
	}
}

// ParseTunable reads a non-negative number from input. Anything else,
// including an empty line, yields def.
func ParseTunable(input string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
