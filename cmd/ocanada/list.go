package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies, parties and difficulties",
	Long:  `Shows the registered autopilot strategies, the playable parties of the data set and the difficulty presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	ds, rules, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game data: %v\n", err)
		os.Exit(1)
	}

	strategies := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Println("Strategies:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Parties:")
	fmt.Println()
	for _, p := range ds.PlayableParties() {
		fmt.Printf("  %-4s  %s (%s)\n", p.ID, p.Name, p.Ideology)
	}

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	for _, d := range config.Difficulties() {
		dr, _ := rules.ForDifficulty(d)
		fmt.Printf("  %-6s  %2d CP per cycle, AI %2d CP +%g support\n", d, dr.PlayerPoints, dr.AIPoints, dr.AIBonus)
	}

	fmt.Println()
	fmt.Println("Run 'ocanada simulate --party <id> --strategy <id>' to play a game.")
}
