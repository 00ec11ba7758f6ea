package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/console-flappy/internal/config"
	"github.com/vovakirdan/console-flappy/internal/engine/enginetest"
	"github.com/vovakirdan/console-flappy/internal/platform/tui"
	"github.com/vovakirdan/console-flappy/internal/storage"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := config.WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	return path
}

func TestLoadPlaySettings(t *testing.T) {
	path := writeTestConfig(t)

	s, err := loadPlaySettings(path, "hard", 100, 0, 7)
	if err != nil {
		t.Fatalf("loadPlaySettings: %v", err)
	}
	if s.source != path {
		t.Errorf("source = %q, expected %q", s.source, path)
	}
	if s.preset != config.DifficultyHard || !s.cfg.Difficulty.Enabled {
		t.Errorf("preset = %q, enabled = %v", s.preset, s.cfg.Difficulty.Enabled)
	}
	if s.cfg.Screen.Width != 100 || s.cfg.Screen.Height != 30 {
		t.Errorf("size = %dx%d, expected 100x30", s.cfg.Screen.Width, s.cfg.Screen.Height)
	}
	if s.seed != 7 {
		t.Errorf("seed = %d", s.seed)
	}
}

func TestLoadPlaySettingsErrors(t *testing.T) {
	path := writeTestConfig(t)

	tests := []struct {
		name       string
		path       string
		difficulty string
		width      int
	}{
		{"unknown difficulty", path, "insane", 0},
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), "", 0},
		{"too narrow for pipes", path, "", 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadPlaySettings(tc.path, tc.difficulty, tc.width, 0, 0); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPlayQuitFromTitle(t *testing.T) {
	s, err := loadPlaySettings(writeTestConfig(t), "", 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	con := enginetest.New()
	con.QueueKeys('q')
	prompter := tui.NewPrompter(tui.ModeNone, strings.NewReader(""), io.Discard)

	if err := play(context.Background(), s, con, prompter, nil, testLogger()); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !con.Opened || !con.Closed {
		t.Errorf("opened=%v closed=%v, expected both", con.Opened, con.Closed)
	}
	if con.Title != "Flappy Bird" || con.Width != 120 || con.Height != 30 {
		t.Errorf("console opened as %q %dx%d", con.Title, con.Width, con.Height)
	}
}

func TestPlayRecordsRound(t *testing.T) {
	s, err := loadPlaySettings(writeTestConfig(t), "", 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	// Start from the title screen, then let the bird fall out of bounds
	con := enginetest.New()
	con.QueueKeys(' ')
	prompter := tui.NewPrompter(tui.ModeNone, strings.NewReader(""), io.Discard)

	if err := play(context.Background(), s, con, prompter, store, testLogger()); err != nil {
		t.Fatalf("play: %v", err)
	}

	scores, err := store.AllScores()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d rounds, expected 1", len(scores))
	}
	if scores[0].Difficulty != "fixed" || scores[0].JumpVelocity != 15 {
		t.Errorf("stored round %+v", scores[0].Round)
	}
}

func TestPlayCanceled(t *testing.T) {
	s, err := loadPlaySettings(writeTestConfig(t), "", 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	con := enginetest.New()
	con.QueueKeys(' ')
	if err := play(ctx, s, con, nil, nil, testLogger()); err != nil {
		t.Errorf("canceled play should exit cleanly, got %v", err)
	}
}

func TestPlayOpenFailure(t *testing.T) {
	s, err := loadPlaySettings(writeTestConfig(t), "", 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	con := enginetest.New()
	con.OpenErr = os.ErrPermission
	if err := play(context.Background(), s, con, nil, nil, testLogger()); err == nil {
		t.Error("expected an initialize error")
	}
}

func TestPrintConfig(t *testing.T) {
	s, err := loadPlaySettings(writeTestConfig(t), "normal", 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := printConfig(&buf, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"# source: ", "# difficulty: normal", "gravity: 40", "enabled: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "flappy.yaml")
	var buf bytes.Buffer

	if err := writeUserConfig(&buf, path, false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if !strings.Contains(buf.String(), path) {
		t.Errorf("unexpected output %q", buf.String())
	}
	if err := writeUserConfig(&buf, path, false); err == nil {
		t.Error("second write without overwrite should fail")
	}
	if err := writeUserConfig(&buf, path, true); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}

func TestClearScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, err := store.SaveRound(storage.Round{Score: 3}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := clearScores(&buf, store); err != nil {
		t.Fatal(err)
	}
	if best, _ := store.HighScore(); best != 0 {
		t.Errorf("high score after clear = %d", best)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flappy.log")
	logger, closer, err := newLogger(path, "debug")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("hello", "n", 1)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "flappy") {
		t.Errorf("log file contents %q", data)
	}

	if _, _, err := newLogger("", "loud"); err == nil {
		t.Error("expected an invalid level error")
	}
}
