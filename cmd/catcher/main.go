// catcher is a three-lane fruit catching game steered by a pose classifier.
//
// Usage:
//
//	catcher play             - Play in the terminal (keyboard, replay or remote feed)
//	catcher serve            - Start SSH server for remote play
//	catcher run              - Play headless sessions from a feed and print results
//	catcher config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--config <path>       - Custom catcher config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catcher",
	Short: "Pose Catcher - catch falling fruit by leaning left and right",
	Long: `Pose Catcher is a 60 second arcade game: fruit falls through three
lanes and a pose classifier moves the basket under it. Catch fruit for
points, and avoid the bombs: a single bomb ends the game.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  run      - Play headless sessions from a recorded or remote feed
  config   - Print the default configuration

Examples:
  catcher play
  catcher play --feed ./session.yaml
  catcher play --listen :8080
  catcher serve --ssh :2222
  catcher run --feed ./session.yaml --runs 5 --fast`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom catcher config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the process logger on stderr.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig loads the catcher config, applies the difficulty preset and
// validates the result. Invalid values are replaced and logged.
func loadConfig(logger *log.Logger) (config.CatcherConfig, error) {
	cfg, err := config.LoadCatcher(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParseDifficultyPreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyCatcherPreset(&cfg, preset)
	}

	for _, field := range cfg.Validate() {
		logger.Warn("invalid config value replaced with default", "field", field)
	}
	return cfg, nil
}

// fatal prints an error in the CLI format and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
