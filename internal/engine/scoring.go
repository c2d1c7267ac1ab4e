package engine

import "github.com/vovakirdan/ocanada/internal/config"

// Grade is a final letter grade with its label.
type Grade struct {
	Letter string
	Label  string
	Min    int
}

// GradeFor returns the highest band whose minimum the score reaches.
// Scores below every band get the lowest one.
func GradeFor(score int, grades []config.GradeBand) Grade {
	if len(grades) == 0 {
		return Grade{}
	}
	sorted := config.Rules{Scoring: config.ScoringRules{Grades: grades}}.SortedGrades()
	for _, g := range sorted {
		if score >= g.Min {
			return Grade{Letter: g.Grade, Label: g.Label, Min: g.Min}
		}
	}
	last := sorted[len(sorted)-1]
	return Grade{Letter: last.Grade, Label: last.Label, Min: last.Min}
}

// FinalScore summarises a game.
type FinalScore struct {
	Score      int
	Grade      Grade
	TimesWon   int
	TotalSeats int // Player seats summed over every election
	Elections  int
}

// FinalScore grades the game so far. It may be called before the game ends.
func (e *Engine) FinalScore() FinalScore {
	return FinalScore{
		Score:      e.score,
		Grade:      GradeFor(e.score, e.rules.Scoring.Grades),
		TimesWon:   e.timesWon,
		TotalSeats: e.totalSeats,
		Elections:  len(e.history),
	}
}

// scoreElection applies one result to the running totals and returns the points gained.
func (e *Engine) scoreElection(res ElectionResult) int {
	s := e.rules.Scoring
	gained := 0
	switch {
	case res.PlayerWon:
		e.timesWon++
		if res.Government == Majority {
			gained += s.MajorityBonus
		} else {
			gained += s.MinorityBonus
		}
	case res.PlayerSeats >= s.OppositionThreshold:
		gained += s.OppositionBonus
	}
	gained += res.PlayerSeats

	e.score += gained
	e.totalSeats += res.PlayerSeats
	return gained
}
