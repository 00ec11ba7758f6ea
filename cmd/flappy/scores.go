package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/console-flappy/internal/platform/tui"
	"github.com/vovakirdan/console-flappy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the recorded high scores. On a terminal an interactive
scoreboard is shown; otherwise a plain table is printed.

Examples:
  flappy scores
  flappy scores --plain --limit 5
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to print in plain mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table even on a terminal")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		return clearScores(out, store)
	}

	if !flagScoresPlain && tui.IsTerminal(os.Stdout) && tui.IsTerminal(os.Stdin) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	return tui.FormatScores(out, store, flagScoresLimit)
}

// clearScores removes every stored round.
func clearScores(w io.Writer, store *storage.Store) error {
	if err := store.ClearScores(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "All scores cleared.")
	return err
}
