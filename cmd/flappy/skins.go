package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List bird skins",
	Long:  `Shows the birds you can fly. Pick one with 'flappy play --skin <n>' or from the in-game menu.`,
	Args:  cobra.NoArgs,
	Run:   runSkins,
}

func runSkins(_ *cobra.Command, _ []string) {
	skins := flappy.Skins()

	fmt.Println("Available skins:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range skins {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-2s  %-*s  %s\n", "#", maxNameLen, "Name", "Bird")
	fmt.Printf("  %-2s  %-*s  %s\n", "-", maxNameLen, "----", "----")

	for _, s := range skins {
		fmt.Printf("  %-2d  %-*s  ●%c\n", s.ID, maxNameLen, s.Name, s.Glyph)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play --skin <#>' to fly one.")
}
