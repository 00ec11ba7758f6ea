// Package config provides YAML-based game configuration loading and
// difficulty management for console flappy.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Pipes      FlappyPipes      `yaml:"pipes"`
	Bird       FlappyBird       `yaml:"bird"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Prompt     PromptConfig     `yaml:"prompt"`
}

// ScreenConfig defines the console play area.
type ScreenConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FlappyPhysics holds the default tunables. Velocities are in cells per
// second, gravity in cells per second squared.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	PipeVelocity float64 `yaml:"pipe_velocity"`
}

// FlappyPipes defines pipe generation and recycling.
type FlappyPipes struct {
	Width        int `yaml:"width"`
	Spacing      int `yaml:"spacing"`       // Empty columns between consecutive pipes
	Count        int `yaml:"count"`         // Pipes seeded at round start
	RecycleBelow int `yaml:"recycle_below"` // Pipes whose column drops below this are replaced
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	MinGapStart  int `yaml:"min_gap_start"`
	MaxGapStart  int `yaml:"max_gap_start"`
}

// FlappyBird defines the bird.
type FlappyBird struct {
	Col   int    `yaml:"col"`
	Glyph string `yaml:"glyph"`
}

// PromptConfig controls the interactive prompts shown around rounds.
type PromptConfig struct {
	Tunables bool `yaml:"tunables"` // Ask for jump/pipe velocity and gravity before the first round
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to pipe velocity at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string selects fixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports the first setting that would make the game unplayable.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Physics.Gravity < 0 || c.Physics.JumpVelocity < 0 || c.Physics.PipeVelocity < 0 {
		errs = append(errs, errors.New("physics values must not be negative"))
	}
	p := c.Pipes
	if p.Width <= 0 {
		errs = append(errs, fmt.Errorf("pipe width %d must be positive", p.Width))
	}
	if p.Count <= 0 {
		errs = append(errs, fmt.Errorf("pipe count %d must be positive", p.Count))
	}
	if p.Spacing < 0 {
		errs = append(errs, fmt.Errorf("pipe spacing %d must not be negative", p.Spacing))
	}
	if p.MinGapSize <= 0 || p.MinGapSize > p.MaxGapSize {
		errs = append(errs, fmt.Errorf("gap size range [%d,%d] is invalid", p.MinGapSize, p.MaxGapSize))
	}
	if p.MinGapStart < 0 || p.MinGapStart > p.MaxGapStart {
		errs = append(errs, fmt.Errorf("gap start range [%d,%d] is invalid", p.MinGapStart, p.MaxGapStart))
	}
	if c.Bird.Col < 0 || (c.Screen.Width > 0 && c.Bird.Col >= c.Screen.Width) {
		errs = append(errs, fmt.Errorf("bird column %d is outside the screen", c.Bird.Col))
	}
	if len([]rune(c.Bird.Glyph)) != 1 {
		errs = append(errs, fmt.Errorf("bird glyph %q must be a single character", c.Bird.Glyph))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
