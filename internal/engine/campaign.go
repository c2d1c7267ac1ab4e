package engine

import (
	"math"

	"github.com/vovakirdan/ocanada/internal/dataset"
)

// Campaign spends campaign points to raise the player's support in a region.
// On a refusal nothing changes.
func (e *Engine) Campaign(region dataset.RegionID) error {
	if err := e.requirePhase("campaign", PhaseCampaign); err != nil {
		return err
	}
	if _, ok := e.ds.Region(region); !ok {
		return e.refuse("campaign", ErrUnknownRegion, "%s", region)
	}
	p, _ := e.ds.Party(e.player)
	if !p.EligibleIn(region, e.year) {
		return e.refuse("campaign", ErrIneligibleRegion, "%s in %s", e.player, region)
	}

	c := e.rules.Campaign
	if c.Cost > e.points {
		return e.refuse("campaign", ErrInsufficientPoints, "need %d, have %d", c.Cost, e.points)
	}
	if e.tokens[region] >= c.TokenCap {
		return e.refuse("campaign", ErrTokenCap, "%s has %d", region, e.tokens[region])
	}

	e.tokens[region]++
	// Support above the cap is pulled down to it, not left alone.
	e.setSupport(region, e.player, math.Min(c.SupportCap, e.support[region][e.player]+c.Bonus))
	e.points -= c.Cost

	e.logger.Debug("campaign", "region", region, "tokens", e.tokens[region], "points", e.points)
	return nil
}

// Uncampaign takes back one campaign action in a region and refunds it.
// Returns false if the player has not campaigned there this cycle.
func (e *Engine) Uncampaign(region dataset.RegionID) bool {
	if e.phase != PhaseCampaign || e.tokens[region] <= 0 {
		return false
	}

	c := e.rules.Campaign
	e.tokens[region]--
	e.setSupport(region, e.player, math.Max(0, e.support[region][e.player]-c.Bonus))
	e.points += c.Cost

	e.logger.Debug("uncampaign", "region", region, "tokens", e.tokens[region], "points", e.points)
	return true
}
