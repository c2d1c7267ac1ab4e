package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ocanada/internal/report"
	"github.com/vovakirdan/ocanada/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [party]",
	Short: "Show the best recorded runs",
	Long: `Display the top recorded runs, optionally for one party, followed by
per-party statistics.

Examples:
  ocanada scores
  ocanada scores NDP
  ocanada scores --limit 25
  ocanada scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, args []string) {
	party := ""
	if len(args) == 1 {
		party = strings.ToUpper(args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	runs, err := store.TopRuns(party, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "Best Runs"
	if party != "" {
		title += " - " + party
	}
	fmt.Println(title)
	fmt.Println()
	fmt.Print(report.Leaderboard(runs, time.Now()))

	if len(runs) == 0 {
		fmt.Println()
		fmt.Println("Play 'ocanada simulate' to record the first run!")
		return
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Print(report.Stats(stats))
}
