package engine

import (
	"sort"

	"github.com/vovakirdan/ocanada/internal/dataset"
)

// RunAICampaigns lets every active opponent spend its budget. Each
// opponent reinforces its most valuable regions (support × seats) first,
// one action per region, until it cannot afford another.
func (e *Engine) RunAICampaigns() error {
	if err := e.requirePhase("ai", PhaseCampaign, PhaseEvent); err != nil {
		return err
	}

	ai := e.rules.AI
	for _, p := range e.ds.Parties {
		if p.ID == e.player || !p.ActiveIn(e.year) {
			continue
		}

		ranked := e.rankRegions(p)
		cp := e.budget.AIPoints
		spent := 0
		for _, region := range ranked {
			if cp < ai.ActionCost {
				break
			}
			noise := e.rng.Float64()*2*ai.Noise - ai.Noise
			s := e.support[region][p.ID] + e.budget.AIBonus + noise
			e.setSupport(region, p.ID, clamp(s, 0, ai.SupportCap))
			cp -= ai.ActionCost
			spent++
		}
		e.logger.Debug("ai campaign", "party", p.ID, "actions", spent)
	}
	return nil
}

// rankRegions orders the regions a party contests by support × seats, descending.
func (e *Engine) rankRegions(p dataset.Party) []dataset.RegionID {
	type scored struct {
		id    dataset.RegionID
		value float64
	}
	var list []scored
	for _, r := range e.ds.Regions {
		if !p.Contests(r.ID) {
			continue
		}
		list = append(list, scored{id: r.ID, value: e.support[r.ID][p.ID] * float64(r.Seats)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].value > list[j].value
	})

	out := make([]dataset.RegionID, len(list))
	for i, s := range list {
		out[i] = s.id
	}
	return out
}
