package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all matchups",
	Long:  `Shows every shooter/centipede strategy pairing registered in the arena.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No matchups available.")
		return
	}

	fmt.Println("Available matchups:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		marker := ""
		if g.ID == centipede.DefaultMatchup {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, g.ID, g.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'arena run <id>' or 'arena play <id>' to watch a match.")
}
