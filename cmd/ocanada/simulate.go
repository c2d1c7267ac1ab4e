package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ocanada/internal/autopilot"
	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/dataset"
	"github.com/vovakirdan/ocanada/internal/engine"
	"github.com/vovakirdan/ocanada/internal/registry"
	"github.com/vovakirdan/ocanada/internal/report"
	"github.com/vovakirdan/ocanada/internal/storage"
)

var (
	flagParty      string
	flagDifficulty string
	flagStrategy   string
	flagQuiet      bool
	flagNoSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a full game with an autopilot strategy",
	Long: `Play every scheduled election as the chosen party. Each cycle draws
national events, lets the strategy spend campaign points, runs the AI
opponents and holds the election. The finished run is saved to the
runs database.

Examples:
  ocanada simulate
  ocanada simulate --party CPC --difficulty hard
  ocanada simulate --strategy spread --seed 42
  ocanada simulate --quiet --no-save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagParty, "party", "p", "LPC", "Party to play")
	simulateCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "normal", "Difficulty (easy, normal, hard)")
	simulateCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "greedy", "Autopilot strategy")
	simulateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the final result")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := newLogger()

	if !registry.Exists(flagStrategy) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", flagStrategy)
		fmt.Fprintln(os.Stderr, "Run 'ocanada list' to see available strategies.")
		os.Exit(1)
	}
	strategy, err := registry.Create(flagStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating strategy: %v\n", err)
		os.Exit(1)
	}

	diff, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ds, rules, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game data: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	party := dataset.PartyID(strings.ToUpper(flagParty))
	e, err := engine.New(ds, party, diff,
		engine.WithSeed(seed),
		engine.WithRules(rules),
		engine.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	rep := report.New(ds)
	opts := autopilot.Options{Logger: logger}
	if !flagQuiet {
		opts.OnElection = func(res engine.ElectionResult) {
			fmt.Println(rep.Election(res, party, e.ElectionIndex()))
		}
	}

	logger.Info("simulating", "party", party, "difficulty", diff, "strategy", strategy.ID(), "seed", seed)
	final, err := autopilot.Run(e, strategy, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during simulation: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(rep.Final(final, party))

	if flagNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Party:      string(party),
		Difficulty: string(diff),
		Strategy:   strategy.ID(),
		Seed:       seed,
		Score:      final.Score,
		Grade:      final.Grade.Letter,
		TimesWon:   final.TimesWon,
		TotalSeats: final.TotalSeats,
		Elections:  final.Elections,
	}, e.History())
	if err != nil {
		logger.Error("cannot save run", "err", err)
		return
	}
	logger.Info("run saved", "id", id)

	if best, err := store.HighScore(string(party)); err == nil && best == final.Score {
		fmt.Println("New best score for", party+"!")
	}
}
