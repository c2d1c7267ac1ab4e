package engine

import "github.com/vovakirdan/ocanada/internal/dataset"

// GovernmentType classifies the winner's hold on the legislature.
type GovernmentType string

const (
	Majority GovernmentType = "majority"
	Minority GovernmentType = "minority"
)

// ElectionResult is the immutable record of one election.
type ElectionResult struct {
	Year        int                                          `json:"year"`
	National    map[dataset.PartyID]int                      `json:"national"`
	Regions     map[dataset.RegionID]map[dataset.PartyID]int `json:"regions"`
	Winner      dataset.PartyID                              `json:"winner"` // Empty if no seats were allocated
	WinnerSeats int                                          `json:"winner_seats"`
	Government  GovernmentType                               `json:"government"`
	PlayerSeats int                                          `json:"player_seats"`
	PlayerWon   bool                                         `json:"player_won"`
	ScoreGained int                                          `json:"score_gained"`
}

func (r ElectionResult) clone() ElectionResult {
	national := make(map[dataset.PartyID]int, len(r.National))
	for p, n := range r.National {
		national[p] = n
	}
	regions := make(map[dataset.RegionID]map[dataset.PartyID]int, len(r.Regions))
	for id, row := range r.Regions {
		cp := make(map[dataset.PartyID]int, len(row))
		for p, n := range row {
			cp[p] = n
		}
		regions[id] = cp
	}
	r.National = national
	r.Regions = regions
	return r
}

// TotalSeats sums the national seat counts.
func (r ElectionResult) TotalSeats() int {
	total := 0
	for _, n := range r.National {
		total += n
	}
	return total
}

// RunElection allocates every region's seats, records the result and scores it.
// One election is held per cycle.
func (e *Engine) RunElection() (ElectionResult, error) {
	if err := e.requirePhase("election", PhaseCampaign, PhaseEvent); err != nil {
		return ElectionResult{}, err
	}
	if e.elected {
		return ElectionResult{}, e.refuse("election", ErrElectionHeld, "%d", e.year)
	}

	res := e.tally()
	res.ScoreGained = e.scoreElection(res)

	e.history = append(e.history, res)
	e.elected = true
	e.phase = PhaseResults

	e.logger.Debug("election",
		"year", res.Year,
		"winner", res.Winner,
		"seats", res.WinnerSeats,
		"government", res.Government,
		"player_seats", res.PlayerSeats,
	)
	return res.clone(), nil
}

// tally computes an election result from current support without side effects.
func (e *Engine) tally() ElectionResult {
	res := ElectionResult{
		Year:     e.year,
		National: make(map[dataset.PartyID]int, len(e.ds.Parties)),
		Regions:  make(map[dataset.RegionID]map[dataset.PartyID]int, len(e.ds.Regions)),
	}
	for _, p := range e.ds.Parties {
		res.National[p.ID] = 0
	}
	for _, r := range e.ds.Regions {
		seats := e.RegionSeats(r.ID)
		res.Regions[r.ID] = seats
		for p, n := range seats {
			res.National[p] += n
		}
	}

	// Strictly greatest wins; ties keep enumeration order.
	for _, p := range e.ds.Parties {
		if n := res.National[p.ID]; n > res.WinnerSeats {
			res.Winner, res.WinnerSeats = p.ID, n
		}
	}

	res.Government = Minority
	if res.Winner != "" && res.WinnerSeats >= e.ds.MajorityThreshold() {
		res.Government = Majority
	}
	res.PlayerSeats = res.National[e.player]
	res.PlayerWon = res.Winner != "" && res.Winner == e.player
	return res
}
