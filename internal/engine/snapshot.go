package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/ocanada/internal/dataset"
)

// Snapshot is a serializable copy of the engine state.
// Map-valued fields marshal with sorted keys under encoding/json.
type Snapshot struct {
	Party      string                        `json:"party"`
	Difficulty string                        `json:"difficulty"`
	Index      int                           `json:"index"`
	Year       int                           `json:"year"`
	Phase      string                        `json:"phase"`
	Points     int                           `json:"points"`
	Score      int                           `json:"score"`
	TotalSeats int                           `json:"total_seats"`
	TimesWon   int                           `json:"times_won"`
	Support    map[string]map[string]float64 `json:"support"`
	Tokens     map[string]int                `json:"tokens"`
	Deck       []string                      `json:"deck"` // Remaining card IDs in draw order
	Pending    []string                      `json:"pending"`
	Drawn      bool                          `json:"drawn"`
	Elected    bool                          `json:"elected"`
	Used       []string                      `json:"used"` // Sorted
	History    []ElectionResult              `json:"history"`
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Party:      string(e.player),
		Difficulty: string(e.diff),
		Index:      e.index,
		Year:       e.year,
		Phase:      string(e.phase),
		Points:     e.points,
		Score:      e.score,
		TotalSeats: e.totalSeats,
		TimesWon:   e.timesWon,
		Support:    make(map[string]map[string]float64, len(e.support)),
		Tokens:     make(map[string]int, len(e.tokens)),
		Deck:       make([]string, len(e.deck)),
		Pending:    make([]string, len(e.pending)),
		Drawn:      e.drawn,
		Elected:    e.elected,
		History:    e.History(),
	}

	for r, row := range e.support {
		cp := make(map[string]float64, len(row))
		for p, v := range row {
			cp[string(p)] = v
		}
		s.Support[string(r)] = cp
	}
	for r, n := range e.tokens {
		s.Tokens[string(r)] = n
	}
	for i, c := range e.deck {
		s.Deck[i] = c.ID
	}
	for i, c := range e.pending {
		s.Pending[i] = c.ID
	}
	for id := range e.used {
		s.Used = append(s.Used, id)
	}
	sort.Strings(s.Used)
	return s
}

// Clone returns an independent engine with the same state and the given
// random source, or a time-seeded one if r is nil. The data set is
// shared since it is read-only.
func (e *Engine) Clone(r Rand) *Engine {
	c := *e
	c.rng = r
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.support = copySupport(e.support)

	c.tokens = make(map[dataset.RegionID]int, len(e.tokens))
	for id, n := range e.tokens {
		c.tokens[id] = n
	}
	c.deck = make([]dataset.EventCard, len(e.deck))
	for i, card := range e.deck {
		c.deck[i] = card.Clone()
	}
	c.pending = make([]dataset.EventCard, len(e.pending))
	for i, card := range e.pending {
		c.pending[i] = card.Clone()
	}
	c.used = make(map[string]bool, len(e.used))
	for id := range e.used {
		c.used[id] = true
	}
	c.history = e.History()
	return &c
}
