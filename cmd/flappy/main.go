// flappy is a terminal flappy-bird game with persistent best scores, a coin
// bank, bird skins and a day/night cycle.
//
// Usage:
//
//	flappy                   - Play (same as flappy play)
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show run history and player totals
//	flappy skins             - List bird skins
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappy/flappy.db)
//	--config <path>       - Use a YAML or TOML config file
//	--variant <name>      - classic or modern tuning
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//
// FLAPPY_DB, FLAPPY_CONFIG, FLAPPY_VARIANT and FLAPPY_LOG_LEVEL (also read
// from a .env file) provide defaults for the matching flags.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagVariant    string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// envDefaults maps flags to the environment variables that back them.
var envDefaults = map[string]string{
	"db":        "FLAPPY_DB",
	"config":    "FLAPPY_CONFIG",
	"variant":   "FLAPPY_VARIANT",
	"log-level": "FLAPPY_LOG_LEVEL",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - guide a bird through the pipes in your terminal",
	Long: `Flappy is a terminal take on the flappy-bird game. Flap through the
gaps, grab coins, beat your best score and pick a bird skin.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  scores   - View run history and totals
  skins    - List bird skins
  config   - Print the effective configuration

Examples:
  flappy
  flappy play --variant modern --skin 3
  flappy serve --ssh :2222
  flappy scores --tui
  flappy config --format toml`,
	PersistentPreRunE: applyEnv,
	Run:               runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.flappy/flappy.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	flags.StringVar(&flagVariant, "variant", "", "Game variant: classic, modern")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv loads .env and fills every unset flag that has an environment
// variable behind it. Flags given on the command line win.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		env, ok := envDefaults[f.Name]
		if !ok || f.Changed || firstErr != nil {
			return
		}
		if v, set := os.LookupEnv(env); set && v != "" {
			if err := f.Value.Set(v); err != nil {
				firstErr = fmt.Errorf("%s: %w", env, err)
			}
		}
	})
	return firstErr
}

// loadConfig resolves the game config from --config, --variant and --difficulty.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyVariant(&cfg, config.Variant(flagVariant)); err != nil {
		return cfg, err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, config.Validate(cfg)
}

// newLogger builds the CLI logger. Without --log-file the logs go to fallback,
// which is io.Discard while the TUI owns the terminal.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
