package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history and totals",
	Long: `Display the top runs, best score and coin bank.

Examples:
  flappy scores
  flappy scores --recent --limit 20
  flappy scores --player alice
  flappy scores --tui
  flappy scores --clear --player alice`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's runs (empty = everyone)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (of --player, or everyone)")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(flagScoresPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagScoresPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	title := "Top Runs"
	query := store.TopRuns
	if flagScoresRecent {
		title = "Recent Runs"
		query = store.RecentRuns
	}

	runs, err := query(flagScoresPlayer, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if flagScoresPlayer != "" {
		title += " - " + flagScoresPlayer
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-10s  %s\n", "Rank", "Player", "Score", "Coins", "Skin", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-10s  %s\n", "----", "------", "-----", "-----", "----", "----")

	for i, r := range runs {
		score := fmt.Sprint(r.Score)
		if r.NewBest {
			score += "*"
		}
		fmt.Printf("  %-4d  %-12s  %-6s  %-6d  %-10s  %s\n",
			i+1, r.Player, score, r.Coins, r.Skin, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	printTotals(store, flagScoresPlayer)
}

// printTotals shows the persisted best score and coin bank.
func printTotals(store *storage.Store, player string) {
	var kv flappy.KVStore = store
	if player != "" && player != storage.LocalPlayer {
		kv = store.Bucket(player)
	}

	best, _, err := kv.Get(flappy.KeyBestScore)
	if err != nil {
		return
	}
	bank, _, err := kv.Get(flappy.KeyTotalCoins)
	if err != nil {
		return
	}
	if best == "" {
		best = "0"
	}
	if bank == "" {
		bank = "0"
	}
	fmt.Printf("Best: %s   Coins banked: %s   (* = new best)\n", best, bank)
}
