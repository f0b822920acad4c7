package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSkin int
	flagBell bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  Space/W/Up/Click - Flap
  P                - Pause
  R/Enter          - Retry (after game over)
  Esc/B            - Back to menu (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Variants:
  classic - pipes move 2 units per tick, fixed coin chance
  modern  - pipes move 2.5 units per tick, coin chance grows with score

Difficulty options:
  easy   - Start at lowest difficulty, speeds up with score
  normal - Start at 30% difficulty, speeds up with score
  hard   - Start at 70% difficulty, speeds up with score
  fixed  - No progression

Examples:
  flappy play
  flappy play --variant classic
  flappy play --difficulty hard --skin 8
  flappy play --config ./my-flappy.toml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagSkin, "skin", -1, "Bird skin number (see 'flappy skins'); -1 keeps the saved skin")
	cmd.Flags().BoolVar(&flagBell, "bell", true, "Ring the terminal bell on score, coin and death")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSkin >= 0 {
		if _, ok := flappy.SkinByID(flagSkin); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown skin %d\n", flagSkin)
			fmt.Fprintln(os.Stderr, "Run 'flappy skins' to see available skins.")
			os.Exit(1)
		}
	}

	logger, closeLog, err := newLogger("flappy", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores will not persist", "db", flagDBPath, "error", err)
		// Continue without storage - the game still works
		store = nil
	}

	opts := tui.Options{
		Flappy: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Skin:   max(flagSkin, 0),
		Bell:   flagBell,
		Output: os.Stdout,
		Logger: logger,
	}

	// An explicit --skin wins over the saved one.
	if flagSkin >= 0 && store != nil {
		if setErr := store.Set(tui.KeySkin, fmt.Sprint(flagSkin)); setErr != nil {
			logger.Warn("could not save skin", "error", setErr)
		}
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
