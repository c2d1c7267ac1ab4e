// ocanada simulates Canadian federal election campaigns from the command line.
//
// Usage:
//
//	ocanada list                 - List strategies, parties and difficulties
//	ocanada simulate             - Play a full game with an autopilot strategy
//	ocanada scores [party]       - Show the best recorded runs
//	ocanada validate [file]      - Check a data set file for errors
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.ocanada/runs.db)
//	--data <path>   - Use a custom data set file
//	--rules <path>  - Use a custom rules file
//	--verbose       - Log engine decisions
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/dataset"
)

var (
	// Global flags
	flagSeed      int64
	flagDBPath    string
	flagDataPath  string
	flagRulesPath string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ocanada",
	Short: "O Canada - federal election campaign simulator",
	Long: `O Canada simulates Canadian federal elections from 1953 onward.
Pick a party, spend campaign points across provinces, weather national
events and see how first-past-the-post turns support into seats.

Available commands:
  list      - Show strategies, parties and difficulties
  simulate  - Play a full game with an autopilot strategy
  scores    - View the best recorded runs
  validate  - Check a data set file

Examples:
  ocanada list
  ocanada simulate --party NDP --strategy greedy
  ocanada simulate --seed 42 --difficulty hard
  ocanada scores LPC
  ocanada validate ./configs/canada.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ocanada/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "Path to a data set file")
	rootCmd.PersistentFlags().StringVar(&flagRulesPath, "rules", "", "Path to a rules file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine decisions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(validateCmd)
}

// newLogger builds the CLI logger. --verbose enables engine debug output.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ocanada",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadGame loads the data set and rules selected by the global flags.
func loadGame() (*dataset.Dataset, config.Rules, error) {
	ds, err := dataset.Load(flagDataPath)
	if err != nil {
		return nil, config.Rules{}, err
	}
	rules, err := config.Load(flagRulesPath)
	if err != nil {
		return nil, config.Rules{}, err
	}
	return ds, rules, nil
}
