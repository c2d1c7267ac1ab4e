package engine

import (
	"math"
	"sort"

	"github.com/vovakirdan/ocanada/internal/dataset"
)

// AllocateSeats splits a region's seats among the eligible parties.
//
// Each party's support (floored at 0) is raised to exponent, every party
// gets the floor of its share, and the leftover seats go one each to the
// largest fractional remainders. Ties keep the order of eligible.
// The result always sums to seats unless every weight is zero, in which
// case it is empty.
func AllocateSeats(support map[dataset.PartyID]float64, eligible []dataset.PartyID, seats int, exponent float64) map[dataset.PartyID]int {
	weights := make([]float64, len(eligible))
	total := 0.0
	for i, p := range eligible {
		weights[i] = math.Pow(math.Max(0, support[p]), exponent)
		total += weights[i]
	}
	if total == 0 {
		return map[dataset.PartyID]int{}
	}

	type remainder struct {
		party dataset.PartyID
		frac  float64
	}

	result := make(map[dataset.PartyID]int, len(eligible))
	rems := make([]remainder, len(eligible))
	assigned := 0
	for i, p := range eligible {
		ideal := weights[i] / total * float64(seats)
		whole := int(math.Floor(ideal))
		result[p] = whole
		assigned += whole
		rems[i] = remainder{party: p, frac: ideal - float64(whole)}
	}

	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for i := 0; i < seats-assigned; i++ {
		result[rems[i%len(rems)].party]++
	}
	return result
}

// eligibleParties lists the parties that can win seats in a region this year.
func (e *Engine) eligibleParties(region dataset.RegionID) []dataset.PartyID {
	out := make([]dataset.PartyID, 0, len(e.ds.Parties))
	for _, p := range e.ds.Parties {
		if p.EligibleIn(region, e.year) {
			out = append(out, p.ID)
		}
	}
	return out
}

// RegionSeats projects the seats each party would win in a region now.
func (e *Engine) RegionSeats(region dataset.RegionID) map[dataset.PartyID]int {
	r, ok := e.ds.Region(region)
	if !ok {
		return map[dataset.PartyID]int{}
	}
	return AllocateSeats(e.support[region], e.eligibleParties(region), r.Seats, e.rules.Seats.Exponent)
}
