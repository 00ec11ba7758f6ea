package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Title:  "Flappy Bird",
			Width:  120,
			Height: 30,
		},
		Physics: FlappyPhysics{
			Gravity:      40,
			JumpVelocity: 15,
			PipeVelocity: 20,
		},
		Pipes: FlappyPipes{
			Width:        4,
			Spacing:      15,
			Count:        8,
			RecycleBelow: 5,
			MinGapSize:   5,
			MaxGapSize:   10,
			MinGapStart:  2,
			MaxGapStart:  18,
		},
		Bird: FlappyBird{
			Col:   10,
			Glyph: "@",
		},
		Prompt: PromptConfig{
			Tunables: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
