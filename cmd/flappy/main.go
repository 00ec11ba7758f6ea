// flappy is a Flappy Bird clone drawn on a fixed-size console character grid.
//
// Usage:
//
//	flappy                   - Play (same as "flappy play")
//	flappy play              - Play a round, with replay prompts
//	flappy scores            - Show high scores
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible pipes
//	--db <path>          - Set database path (default: ~/.flappy/scores.db)
//	--log <path>         - Write logs to a file (default: discard)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird drawn on a 120x30 console character grid.

Available commands:
  play     - Play the game (default)
  scores   - View high scores
  config   - Show or write the configuration

Examples:
  flappy
  flappy play --difficulty hard
  flappy play --prompt none --seed 42
  flappy scores
  flappy config --write`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Play flags are accepted on the root command as well
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. The console owns the terminal while
// playing, so logs never go to stdout or stderr.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = io.NopCloser(nil)
	)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           lvl,
	})
	return logger, closer, nil
}
