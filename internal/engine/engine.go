// Package engine runs one game: support ledger, campaign economy, event
// deck, AI opponents, elections, drift between cycles and scoring.
//
// An Engine is not safe for concurrent use. Independent games should use
// independent engines (see Clone).
package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/dataset"
)

// Phase is the engine's position within a cycle.
type Phase string

const (
	PhaseCampaign Phase = "campaign"
	PhaseEvent    Phase = "event"     // Drawn events are pending
	PhaseResults  Phase = "results"   // Election held, waiting for Advance
	PhaseGameOver Phase = "game_over" // Calendar exhausted
)

// Rand is the random source the engine draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a private math/rand source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRules replaces the default rule set.
func WithRules(rules config.Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine holds the complete mutable state of one game.
type Engine struct {
	ds     *dataset.Dataset
	rules  config.Rules
	diff   config.Difficulty
	budget config.DifficultyRules
	player dataset.PartyID
	rng    Rand
	logger *log.Logger

	support map[dataset.RegionID]map[dataset.PartyID]float64
	tokens  map[dataset.RegionID]int
	points  int

	index int
	year  int
	phase Phase

	score      int
	totalSeats int
	timesWon   int

	deck    []dataset.EventCard
	pending []dataset.EventCard
	drawn   bool // Events already drawn this cycle
	elected bool // Election already held this cycle
	used    map[string]bool
	history []ElectionResult
}

// New creates an engine in the campaign phase of the first scheduled election.
func New(ds *dataset.Dataset, party dataset.PartyID, diff config.Difficulty, opts ...Option) (*Engine, error) {
	if ds == nil {
		return nil, fmt.Errorf("engine: nil data set")
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid data set: %w", err)
	}

	e := &Engine{
		ds:     ds,
		rules:  config.DefaultRules(),
		diff:   diff,
		player: party,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := e.rules.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid rules: %w", err)
	}
	p, ok := ds.Party(party)
	if !ok {
		return nil, fmt.Errorf("engine: unknown party %q", party)
	}
	if !p.Playable {
		return nil, fmt.Errorf("engine: party %q is not playable", party)
	}
	budget, ok := e.rules.ForDifficulty(diff)
	if !ok {
		return nil, fmt.Errorf("engine: unknown difficulty %q", diff)
	}
	e.budget = budget

	e.support = make(map[dataset.RegionID]map[dataset.PartyID]float64, len(ds.Regions))
	e.tokens = make(map[dataset.RegionID]int, len(ds.Regions))
	for _, r := range ds.Regions {
		row := make(map[dataset.PartyID]float64, len(ds.Parties))
		for _, party := range ds.Parties {
			row[party.ID] = ds.BaselineSupport(r.ID, party.ID)
		}
		e.support[r.ID] = row
		e.tokens[r.ID] = 0
	}

	e.deck = make([]dataset.EventCard, len(ds.Events))
	for i, c := range ds.Events {
		e.deck[i] = c.Clone()
	}
	e.rng.Shuffle(len(e.deck), func(i, j int) {
		e.deck[i], e.deck[j] = e.deck[j], e.deck[i]
	})

	e.used = make(map[string]bool)
	e.year = ds.Schedule[0]
	e.points = budget.PlayerPoints
	e.phase = PhaseCampaign

	e.logger.Debug("new game", "party", party, "difficulty", diff, "year", e.year)
	return e, nil
}

// Dataset returns the reference data the engine plays on.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

// Rules returns the active rule set.
func (e *Engine) Rules() config.Rules { return e.rules }

// PlayerParty returns the player's party.
func (e *Engine) PlayerParty() dataset.PartyID { return e.player }

// Difficulty returns the difficulty preset.
func (e *Engine) Difficulty() config.Difficulty { return e.diff }

// Year returns the current election year.
func (e *Engine) Year() int { return e.year }

// ElectionIndex returns the position of the current year in the schedule.
func (e *Engine) ElectionIndex() int { return e.index }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// CampaignPoints returns the player's remaining campaign points.
func (e *Engine) CampaignPoints() int { return e.points }

// Tokens returns how many times the player campaigned in a region this cycle.
func (e *Engine) Tokens(region dataset.RegionID) int { return e.tokens[region] }

// IsGameOver reports whether the calendar is exhausted.
func (e *Engine) IsGameOver() bool { return e.phase == PhaseGameOver }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// DeckSize returns the number of event cards not yet drawn.
func (e *Engine) DeckSize() int { return len(e.deck) }

// Support returns a copy of one region's support values.
func (e *Engine) Support(region dataset.RegionID) map[dataset.PartyID]float64 {
	row, ok := e.support[region]
	if !ok {
		return nil
	}
	out := make(map[dataset.PartyID]float64, len(row))
	for p, v := range row {
		out[p] = v
	}
	return out
}

// SupportSnapshot returns a deep copy of every region's support values.
func (e *Engine) SupportSnapshot() map[dataset.RegionID]map[dataset.PartyID]float64 {
	return copySupport(e.support)
}

// History returns the elections held so far, oldest first.
func (e *Engine) History() []ElectionResult {
	out := make([]ElectionResult, len(e.history))
	for i, r := range e.history {
		out[i] = r.clone()
	}
	return out
}

// PendingEvents returns the events drawn this cycle and not yet applied.
func (e *Engine) PendingEvents() []dataset.EventCard {
	out := make([]dataset.EventCard, len(e.pending))
	for i, c := range e.pending {
		out[i] = c.Clone()
	}
	return out
}

// LeadingParty returns the party with the highest support among those
// eligible in the region. Falls back to the first party.
func (e *Engine) LeadingParty(region dataset.RegionID) dataset.PartyID {
	var leader dataset.PartyID
	best := -1.0
	for _, p := range e.ds.Parties {
		if !p.EligibleIn(region, e.year) {
			continue
		}
		if s := e.support[region][p.ID]; s > best {
			leader, best = p.ID, s
		}
	}
	if leader == "" && len(e.ds.Parties) > 0 {
		return e.ds.Parties[0].ID
	}
	return leader
}

// LeadingOpponent returns the non-player party with the greatest
// seat-weighted support, falling back to the data set's default opponent.
func (e *Engine) LeadingOpponent() dataset.PartyID {
	var leader dataset.PartyID
	best := -1.0
	for _, p := range e.ds.Parties {
		if p.ID == e.player {
			continue
		}
		if w := e.weightedSupport(p.ID); w > best {
			leader, best = p.ID, w
		}
	}
	if leader == "" {
		return e.ds.DefaultOpponent
	}
	return leader
}

// PartyTotal is one party's national standing between elections.
type PartyTotal struct {
	Party           dataset.PartyID
	WeightedSupport float64 // Σ support × seats
	AverageSupport  float64 // WeightedSupport / total seats
	Seats           int     // Projected seats if an election were held now
}

// NationalTotals returns every party's national standing in enumeration order.
func (e *Engine) NationalTotals() []PartyTotal {
	total := float64(e.ds.TotalSeats())
	seats := make(map[dataset.PartyID]int, len(e.ds.Parties))
	for _, r := range e.ds.Regions {
		for p, n := range e.RegionSeats(r.ID) {
			seats[p] += n
		}
	}

	out := make([]PartyTotal, 0, len(e.ds.Parties))
	for _, p := range e.ds.Parties {
		w := e.weightedSupport(p.ID)
		pt := PartyTotal{Party: p.ID, WeightedSupport: w, Seats: seats[p.ID]}
		if total > 0 {
			pt.AverageSupport = w / total
		}
		out = append(out, pt)
	}
	return out
}

// AvailablePolicies returns the policy cards the player may still play.
func (e *Engine) AvailablePolicies() []dataset.PolicyCard {
	var out []dataset.PolicyCard
	for _, c := range e.ds.Policies {
		if c.UsableBy(e.player) && !e.used[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) weightedSupport(party dataset.PartyID) float64 {
	w := 0.0
	for _, r := range e.ds.Regions {
		w += e.support[r.ID][party] * float64(r.Seats)
	}
	return w
}

func (e *Engine) setSupport(region dataset.RegionID, party dataset.PartyID, v float64) {
	e.support[region][party] = v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func copySupport(in map[dataset.RegionID]map[dataset.PartyID]float64) map[dataset.RegionID]map[dataset.PartyID]float64 {
	out := make(map[dataset.RegionID]map[dataset.PartyID]float64, len(in))
	for r, row := range in {
		cp := make(map[dataset.PartyID]float64, len(row))
		for p, v := range row {
			cp[p] = v
		}
		out[r] = cp
	}
	return out
}
