// invaders is a Space Invaders style shooter for the terminal.
//
// Usage:
//
//	invaders play            - Play in this terminal
//	invaders serve           - Start SSH server for remote play
//	invaders sessions        - Browse the session journal
//	invaders config          - Print the default configuration
//
// Global flags:
//
//	--config <path>      - Game config YAML (default: search ~/.invaders/configs, ./configs)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--db <path>          - Session journal path (default: ~/.invaders/sessions.db)
//	--log <path>         - Write logs to a file (default: discard while playing)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "TUI Invaders - defend the ground from the invader fleet",
	Long: `TUI Invaders is a terminal take on the classic fixed shooter.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  sessions  - Browse recorded sessions
  config    - Print the default configuration

Examples:
  invaders play
  invaders play --difficulty hard
  invaders play --device /dev/input/js0
  invaders serve --ssh :2222
  invaders sessions`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/sessions.db", "Path to session journal")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the game config from --config and --difficulty.
func loadConfig() (config.InvadersConfig, error) {
	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return config.InvadersConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.InvadersConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyInvadersPreset(&cfg, preset)
	}
	return cfg, nil
}
