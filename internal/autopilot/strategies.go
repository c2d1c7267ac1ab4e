package autopilot

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/ocanada/internal/dataset"
	"github.com/vovakirdan/ocanada/internal/engine"
	"github.com/vovakirdan/ocanada/internal/registry"
)

func init() {
	registry.Register("idle", func() registry.Strategy { return Idle{} })
	registry.Register("spread", func() registry.Strategy { return Spread{} })
	registry.Register("greedy", func() registry.Strategy { return Greedy{} })
}

// Idle never spends anything. Useful as a baseline.
type Idle struct{}

func (Idle) ID() string                { return "idle" }
func (Idle) Title() string             { return "Idle (no campaigning)" }
func (Idle) Plan(*engine.Engine) error { return nil }

// Spread campaigns once per region, largest regions first, then again
// from the top until the points run out. It never plays policy cards.
type Spread struct{}

func (Spread) ID() string    { return "spread" }
func (Spread) Title() string { return "Spread (campaign everywhere)" }

func (Spread) Plan(e *engine.Engine) error {
	regions := bySeats(e.Dataset())
	cost := e.Rules().Campaign.Cost
	for {
		progressed := false
		for _, r := range regions {
			if e.CampaignPoints() < cost {
				return nil
			}
			if err := e.Campaign(r); err != nil {
				if engine.IsRefusal(err) {
					continue
				}
				return err
			}
			progressed = true
		}
		if !progressed {
			return nil
		}
	}
}

// Greedy repeatedly takes the action with the best projected seat gain
// per campaign point, trying every campaign target and every playable
// policy card with every valid choice. Only moves that gain seats are
// taken, so it stops once no affordable move helps.
type Greedy struct{}

func (Greedy) ID() string    { return "greedy" }
func (Greedy) Title() string { return "Greedy (best seats per point)" }

func (Greedy) Plan(e *engine.Engine) error {
	for {
		best, ok := bestAction(e)
		if !ok {
			return nil
		}
		if err := best.apply(e); err != nil {
			if engine.IsRefusal(err) {
				return nil
			}
			return err
		}
	}
}

// action is one candidate player move.
type action struct {
	region dataset.RegionID // Campaign target when policy is empty
	policy string
	choice string
	cost   int
}

func (a action) apply(e *engine.Engine) error {
	if a.policy != "" {
		return e.PlayPolicyCard(a.policy, a.choice)
	}
	return e.Campaign(a.region)
}

func bestAction(e *engine.Engine) (action, bool) {
	base := projectedSeats(e)

	var (
		best     action
		bestRate float64
		found    bool
	)
	for _, a := range candidates(e) {
		if a.cost > e.CampaignPoints() {
			continue
		}
		// Candidate moves are deterministic, so the probe's random source is never read.
		probe := e.Clone(rand.New(rand.NewSource(0)))
		if err := a.apply(probe); err != nil {
			continue
		}
		gain := projectedSeats(probe) - base
		if gain <= 0 {
			continue
		}
		rate := float64(gain) / float64(max(a.cost, 1))
		if !found || rate > bestRate {
			best, bestRate, found = a, rate, true
		}
	}
	return best, found
}

func candidates(e *engine.Engine) []action {
	ds := e.Dataset()
	cost := e.Rules().Campaign.Cost

	var out []action
	for _, r := range ds.Regions {
		out = append(out, action{region: r.ID, cost: cost})
	}
	for _, c := range e.AvailablePolicies() {
		switch c.RequiresChoice {
		case dataset.ChoiceRegion:
			for _, r := range ds.Regions {
				out = append(out, action{policy: c.ID, choice: string(r.ID), cost: c.Cost})
			}
		case dataset.ChoiceGrouping:
			for _, g := range ds.GroupingNames() {
				out = append(out, action{policy: c.ID, choice: g, cost: c.Cost})
			}
		default:
			out = append(out, action{policy: c.ID, cost: c.Cost})
		}
	}
	return out
}

func projectedSeats(e *engine.Engine) int {
	for _, t := range e.NationalTotals() {
		if t.Party == e.PlayerParty() {
			return t.Seats
		}
	}
	return 0
}

func bySeats(ds *dataset.Dataset) []dataset.RegionID {
	regions := append([]dataset.Region(nil), ds.Regions...)
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Seats > regions[j].Seats
	})
	out := make([]dataset.RegionID, len(regions))
	for i, r := range regions {
		out[i] = r.ID
	}
	return out
}
