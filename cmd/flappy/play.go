package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/console-flappy/internal/config"
	"github.com/vovakirdan/console-flappy/internal/engine"
	"github.com/vovakirdan/console-flappy/internal/games/flappy"
	"github.com/vovakirdan/console-flappy/internal/platform/console"
	"github.com/vovakirdan/console-flappy/internal/platform/tui"
	"github.com/vovakirdan/console-flappy/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
	flagPrompt     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Flappy Bird",
	Long: `Start playing. Before the first round you may adjust the jump
velocity, pipe velocity and gravity; after each round you are asked
whether to play again.

Controls:
  Space/W/Up   - Flap
  Q/Esc/Ctrl+C - Quit

Difficulty options:
  easy   - Pipes start at base speed and speed up with score
  normal - Pipes start at 30% extra difficulty
  hard   - Pipes start at 70% extra difficulty
  fixed  - Pipe velocity never changes (default)

Prompt modes:
  auto   - Interactive dialogs on a terminal, plain lines otherwise
  tui    - Always use interactive dialogs
  line   - Always use plain line prompts
  none   - Never ask; use defaults and quit after one round

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml
  flappy play --prompt none --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags on cmd.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Console width in cells (default from config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Console height in cells (default from config)")
	cmd.Flags().StringVar(&flagPrompt, "prompt", "auto", "Prompt mode: auto, tui, line, none")
}

// playSettings collects everything a play session needs.
type playSettings struct {
	cfg    config.FlappyConfig
	preset config.DifficultyPreset
	source string
	seed   int64
}

// loadPlaySettings resolves the config file, the difficulty preset and the
// size overrides, then validates the result.
func loadPlaySettings(path, difficulty string, width, height int, seed int64) (playSettings, error) {
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return playSettings{}, err
	}

	cfg, source, err := config.LoadFlappy(path)
	if err != nil {
		return playSettings{}, err
	}
	config.ApplyFlappyPreset(&cfg, preset)

	if width > 0 {
		cfg.Screen.Width = width
	}
	if height > 0 {
		cfg.Screen.Height = height
	}
	if err := cfg.Validate(); err != nil {
		return playSettings{}, err
	}

	return playSettings{cfg: cfg, preset: preset, source: source, seed: seed}, nil
}

// play builds the game and runs the engine on con until the player stops.
func play(ctx context.Context, s playSettings, con engine.Console, prompter flappy.Prompter, recorder flappy.ScoreRecorder, logger *log.Logger) error {
	opts := []flappy.Option{
		flappy.WithDifficulty(s.preset),
		flappy.WithLogger(logger.WithPrefix("flappy/game")),
	}
	if s.seed != 0 {
		opts = append(opts, flappy.WithSeed(s.seed))
	}
	if prompter != nil {
		opts = append(opts, flappy.WithPrompter(prompter))
	}
	if recorder != nil {
		opts = append(opts, flappy.WithScoreRecorder(recorder))
	}

	game := flappy.New(s.cfg, opts...)
	if err := game.LoadBest(); err != nil {
		logger.Warn("could not read best score", "err", err)
	}

	eng := engine.New(s.cfg.Screen.Title, s.cfg.Screen.Width, s.cfg.Screen.Height, con, game,
		engine.WithLogger(logger.WithPrefix("flappy/engine")))
	if err := eng.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Error("close console", "err", err)
		}
	}()

	err := eng.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(flagLogPath, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	settings, err := loadPlaySettings(flagConfig, flagDifficulty, flagWidth, flagHeight, flagSeed)
	if err != nil {
		return err
	}
	logger.Info("config loaded", "source", settings.source, "difficulty", settings.preset)

	mode, err := tui.ParseMode(flagPrompt)
	if err != nil {
		return err
	}
	logger.Debug("prompt mode", "mode", mode)

	// Open score storage; the game still works without it
	var recorder flappy.ScoreRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
	} else {
		defer store.Close()
		recorder = store
	}

	con, err := console.NewTerminal()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return play(ctx, settings, con, tui.NewStdPrompter(mode), recorder, logger)
}
