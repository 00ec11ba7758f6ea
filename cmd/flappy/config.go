package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/console-flappy/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the game configuration",
	Long: `Print the effective configuration and where it was loaded from.

Lookup order:
  1. --config path
  2. ~/.flappy/configs/flappy.yaml
  3. ./configs/flappy.yaml
  4. built-in defaults

Examples:
  flappy config
  flappy config --difficulty hard
  flappy config --write
  flappy config --write --force`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the default config to ~/.flappy/configs/flappy.yaml")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file with --write")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if flagConfigWrite {
		return writeUserConfig(out, config.UserConfigPath(), flagConfigForce)
	}

	settings, err := loadPlaySettings(flagConfig, flagDifficulty, 0, 0, 0)
	if err != nil {
		return err
	}
	return printConfig(out, settings)
}

// printConfig writes the source line followed by the config as YAML.
func printConfig(w io.Writer, s playSettings) error {
	data, err := config.Marshal(s.cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# source: %s\n# difficulty: %s\n", s.source, s.preset); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// writeUserConfig writes the built-in defaults to path.
func writeUserConfig(w io.Writer, path string, overwrite bool) error {
	if err := config.WriteDefault(path, overwrite); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Wrote %s\n", path)
	return err
}
