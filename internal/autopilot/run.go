// Package autopilot plays whole games through the engine's public
// commands, using a registered strategy for the player's moves.
package autopilot

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ocanada/internal/engine"
	"github.com/vovakirdan/ocanada/internal/registry"
)

// Options tunes a Run.
type Options struct {
	Logger *log.Logger

	// OnElection is called after every election, before Advance.
	OnElection func(engine.ElectionResult)
}

// Run plays the engine to the end of the calendar. Each cycle draws and
// applies events, lets the strategy plan, runs the AI, then holds the
// election.
func Run(e *engine.Engine, s registry.Strategy, opts Options) (engine.FinalScore, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	for !e.IsGameOver() {
		if err := Cycle(e, s); err != nil {
			return engine.FinalScore{}, fmt.Errorf("autopilot: %d: %w", e.Year(), err)
		}

		res := e.History()[len(e.History())-1]
		logger.Info("election",
			"year", res.Year,
			"winner", res.Winner,
			"government", res.Government,
			"player_seats", res.PlayerSeats,
		)
		if opts.OnElection != nil {
			opts.OnElection(res)
		}
		e.Advance()
	}
	return e.FinalScore(), nil
}

// Cycle plays one cycle up to and including the election.
func Cycle(e *engine.Engine, s registry.Strategy) error {
	drawn, err := e.DrawEvents()
	if err != nil {
		return err
	}
	for _, c := range drawn {
		if err := e.ApplyEvent(c); err != nil {
			return err
		}
	}
	if err := s.Plan(e); err != nil {
		return fmt.Errorf("strategy %s: %w", s.ID(), err)
	}
	if err := e.RunAICampaigns(); err != nil {
		return err
	}
	_, err = e.RunElection()
	return err
}
