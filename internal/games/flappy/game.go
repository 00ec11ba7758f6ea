// Package flappy implements a Flappy Bird-style game on the console engine.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/console-flappy/internal/config"
	"github.com/vovakirdan/console-flappy/internal/core"
	"github.com/vovakirdan/console-flappy/internal/engine"
	"github.com/vovakirdan/console-flappy/internal/storage"
)

// End dialog text
const (
	EndTitle    = "Uh oh!"
	endQuestion = "You wanna play again?"
)

// ErrPromptCanceled is returned by a Prompter when the player dismisses a
// prompt instead of answering it.
var ErrPromptCanceled = errors.New("flappy: prompt canceled")

// Prompter asks the player questions while the console is suspended.
type Prompter interface {
	// Tunables lets the player adjust the physics values, starting from defaults.
	Tunables(defaults Tunables) (Tunables, error)

	// Confirm shows a titled yes/no question.
	Confirm(title, message string) (bool, error)
}

// ScoreRecorder persists finished rounds.
type ScoreRecorder interface {
	SaveRound(r storage.Round) (int64, error)
	HighScore() (int, error)
}

// endReason records why a round stopped.
type endReason int

const (
	endNone endReason = iota
	endQuit
	endBounds
	endCollision
)

func (r endReason) String() string {
	switch r {
	case endQuit:
		return "quit"
	case endBounds:
		return "out of bounds"
	case endCollision:
		return "pipe"
	default:
		return "none"
	}
}

// Game implements engine.Game.
type Game struct {
	cfg        config.FlappyConfig
	preset     config.DifficultyPreset
	width      int
	height     int
	tunables   Tunables
	bird       Bird
	birdGlyph  rune
	pipes      *PipeField
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	score   int   // Current round score
	best    int   // Best score seen, including stored rounds
	elapsed float64
	fps     float64
	reason  endReason

	prompter Prompter
	recorder ScoreRecorder
	logger   *log.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes pipe generation deterministic.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPrompter sets the prompter used for tunables and the replay question.
// Without one the defaults are used and rounds are never replayed.
func WithPrompter(p Prompter) Option {
	return func(g *Game) {
		g.prompter = p
	}
}

// WithScoreRecorder persists each finished round.
func WithScoreRecorder(r ScoreRecorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithDifficulty records the preset name stored with each round.
func WithDifficulty(p config.DifficultyPreset) Option {
	return func(g *Game) {
		g.preset = p
	}
}

// New creates a game sized by cfg.Screen.
func New(cfg config.FlappyConfig, opts ...Option) *Game {
	g := &Game{
		cfg:        cfg,
		preset:     config.DifficultyFixed,
		width:      cfg.Screen.Width,
		height:     cfg.Screen.Height,
		tunables:   TunablesFromConfig(cfg.Physics),
		birdGlyph:  '@',
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     log.New(io.Discard),
	}
	if r := []rune(cfg.Bird.Glyph); len(r) > 0 {
		g.birdGlyph = r[0]
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.pipes = NewPipeField(cfg.Pipes, g.rng)
	g.Reset()
	return g
}

// Reset starts a fresh round: score 0, bird at rest mid-screen, pipes
// reseeded from half the screen width. Tunables are kept.
func (g *Game) Reset() {
	g.score = 0
	g.elapsed = 0
	g.fps = 0
	g.reason = endNone
	g.bird = NewBird(g.height/2, g.cfg.Bird.Col)
	g.pipes.Seed(g.width/2, g.pipeVelocity())
}

// Begin collects tunables and shows the title screen until a key is pressed.
func (g *Game) Begin(h engine.Host) error {
	g.width, g.height = h.Width(), h.Height()

	if g.cfg.Prompt.Tunables && g.prompter != nil {
		if err := g.promptTunables(h); err != nil {
			return err
		}
	}

	g.drawTitle(h)
	for {
		if err := h.Poll(); err != nil {
			return fmt.Errorf("flappy: title input: %w", err)
		}
		if err := h.Flush(); err != nil {
			return fmt.Errorf("flappy: title render: %w", err)
		}

		cmds := h.Commands()
		if core.ContainsCommand(cmds, core.CommandQuit) {
			return engine.ErrQuit
		}
		if len(cmds) > 0 {
			return nil
		}
		h.Idle()
	}
}

// promptTunables asks for the physics values. Canceling the prompt quits;
// other failures keep the defaults.
func (g *Game) promptTunables(h engine.Host) error {
	var chosen Tunables
	err := h.Suspend(func() error {
		t, err := g.prompter.Tunables(g.tunables)
		chosen = t
		return err
	})
	switch {
	case errors.Is(err, ErrPromptCanceled):
		return engine.ErrQuit
	case err != nil:
		g.logger.Warn("tunables prompt failed, using defaults", "err", err)
		return nil
	}

	g.tunables = chosen
	g.logger.Info("tunables set",
		"jump_velocity", chosen.JumpVelocity,
		"pipe_velocity", chosen.PipeVelocity,
		"gravity", chosen.Gravity)
	return nil
}

// Update applies input, then bird physics, then the pipes.
func (g *Game) Update(t engine.Tick) (bool, error) {
	for _, cmd := range t.Commands {
		switch cmd {
		case core.CommandQuit:
			g.reason = endQuit
			return false, nil
		case core.CommandJump, core.CommandUp:
			g.bird.JumpRequested = true
		}
	}

	g.fps = t.FPS
	g.elapsed += t.DT

	g.bird.Step(t.DT, g.tunables.JumpVelocity, g.tunables.Gravity)
	if g.bird.OutOfBounds(g.height) {
		g.reason = endBounds
		return false, nil
	}

	g.pipes.Advance(t.DT)
	g.score += g.pipes.Score(g.bird.Col)
	g.pipes.Recycle(g.pipeVelocity())

	if g.pipes.Collides(g.bird.Row, g.bird.Col, g.width, g.height) {
		g.reason = endCollision
		return false, nil
	}
	return true, nil
}

// End records the round and asks whether to play again. Quitting never
// prompts.
func (g *Game) End(h engine.Host) engine.PlayAgain {
	g.logger.Info("round over", "score", g.score, "reason", g.reason, "seconds", g.elapsed)
	if g.reason == endQuit {
		return engine.PlayAgainNo
	}

	g.record()

	if g.prompter == nil {
		return engine.PlayAgainNo
	}

	var again bool
	err := h.Suspend(func() error {
		var err error
		again, err = g.prompter.Confirm(EndTitle, g.EndMessage())
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrPromptCanceled) {
			g.logger.Warn("play again prompt failed", "err", err)
		}
		return engine.PlayAgainNo
	}
	if again {
		return engine.PlayAgainYes
	}
	return engine.PlayAgainNo
}

// record saves the round and refreshes the best score.
func (g *Game) record() {
	g.best = core.Max(g.best, g.score)
	if g.recorder == nil {
		return
	}

	round := storage.Round{
		Score:        g.score,
		Difficulty:   string(g.preset),
		Duration:     time.Duration(g.elapsed * float64(time.Second)),
		JumpVelocity: g.tunables.JumpVelocity,
		PipeVelocity: g.tunables.PipeVelocity,
		Gravity:      g.tunables.Gravity,
	}
	if _, err := g.recorder.SaveRound(round); err != nil {
		g.logger.Error("unable to save round", "err", err)
		return
	}
	best, err := g.recorder.HighScore()
	if err != nil {
		g.logger.Error("unable to read high score", "err", err)
		return
	}
	g.best = core.Max(g.best, best)
}

// LoadBest seeds the best score from the recorder.
func (g *Game) LoadBest() error {
	if g.recorder == nil {
		return nil
	}
	best, err := g.recorder.HighScore()
	if err != nil {
		return fmt.Errorf("flappy: load high score: %w", err)
	}
	g.best = core.Max(g.best, best)
	return nil
}

// EndMessage is the text of the end-of-round dialog.
func (g *Game) EndMessage() string {
	return fmt.Sprintf("Your score was: %d\nBest score: %d\n%s", g.score, g.best, endQuestion)
}

// pipeVelocity is the velocity given to newly created pipes.
func (g *Game) pipeVelocity() float64 {
	return g.difficulty.Speed(g.tunables.PipeVelocity, g.score, g.elapsed)
}

// Score returns the current round score.
func (g *Game) Score() int {
	return g.score
}

// Best returns the best score seen.
func (g *Game) Best() int {
	return g.best
}

// Bird returns the bird.
func (g *Game) Bird() Bird {
	return g.bird
}

// Pipes returns the pipe field.
func (g *Game) Pipes() *PipeField {
	return g.pipes
}

// Tunables returns the physics values in use.
func (g *Game) Tunables() Tunables {
	return g.tunables
}

var _ engine.Game = (*Game)(nil)
