// Package dataset holds the immutable reference data a game is played on:
// parties, regions and their groupings, baseline support, the election
// calendar, and the event and policy decks.
package dataset

import "sort"

// PartyID identifies a party (e.g. "LPC").
type PartyID string

// RegionID identifies an electoral region (e.g. "ON").
type RegionID string

// AllGrouping is the grouping that contains every region exactly once.
const AllGrouping = "all"

// AnyParty marks a policy card every party may play.
const AnyParty PartyID = "any"

// Colors is a party's presentation palette.
type Colors struct {
	Primary string
	Light   string
	Dark    string
}

// Party is a contesting party.
type Party struct {
	ID          PartyID
	Name        string
	ShortName   string
	Description string
	Ideology    string
	Colors      Colors

	// EstablishedYear is the first election year the party may contest; 0 means always.
	EstablishedYear int

	// HomeRegion restricts the party to a single region when set.
	HomeRegion RegionID

	// Playable marks parties a player may choose.
	Playable bool
}

// ActiveIn reports whether the party exists in the given election year.
func (p Party) ActiveIn(year int) bool {
	return p.EstablishedYear == 0 || year >= p.EstablishedYear
}

// Contests reports whether the party runs candidates in the region, ignoring the year.
func (p Party) Contests(region RegionID) bool {
	return p.HomeRegion == "" || p.HomeRegion == region
}

// EligibleIn reports whether the party can win seats in the region in the given year.
func (p Party) EligibleIn(region RegionID, year int) bool {
	return p.ActiveIn(year) && p.Contests(region)
}

// Region is an electoral subdivision with a fixed seat count.
type Region struct {
	ID       RegionID
	Name     string
	Grouping string
	Seats    int
}

// Dataset is the complete reference data for one game.
// Callers treat it as read-only once loaded.
type Dataset struct {
	Name            string
	Parties         []Party // Enumeration order breaks ties everywhere
	Regions         []Region
	Groupings       map[string][]RegionID // Includes AllGrouping
	Baseline        map[RegionID]map[PartyID]float64
	Schedule        []int
	Events          []EventCard
	Policies        []PolicyCard
	DefaultOpponent PartyID
	ExpectedSeats   int // Optional legislature size check; 0 disables it
}

// Party looks up a party by ID.
func (d *Dataset) Party(id PartyID) (Party, bool) {
	for _, p := range d.Parties {
		if p.ID == id {
			return p, true
		}
	}
	return Party{}, false
}

// Region looks up a region by ID.
func (d *Dataset) Region(id RegionID) (Region, bool) {
	for _, r := range d.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Grouping returns the member regions of a named grouping.
func (d *Dataset) Grouping(name string) ([]RegionID, bool) {
	members, ok := d.Groupings[name]
	return members, ok
}

// GroupingNames returns grouping names in sorted order, "all" included.
func (d *Dataset) GroupingNames() []string {
	names := make([]string, 0, len(d.Groupings))
	for name := range d.Groupings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PartyIDs returns party IDs in enumeration order.
func (d *Dataset) PartyIDs() []PartyID {
	ids := make([]PartyID, len(d.Parties))
	for i, p := range d.Parties {
		ids[i] = p.ID
	}
	return ids
}

// RegionIDs returns region IDs in enumeration order.
func (d *Dataset) RegionIDs() []RegionID {
	ids := make([]RegionID, len(d.Regions))
	for i, r := range d.Regions {
		ids[i] = r.ID
	}
	return ids
}

// PlayableParties returns the parties a player may choose.
func (d *Dataset) PlayableParties() []Party {
	var out []Party
	for _, p := range d.Parties {
		if p.Playable {
			out = append(out, p)
		}
	}
	return out
}

// TotalSeats is the size of the legislature.
func (d *Dataset) TotalSeats() int {
	total := 0
	for _, r := range d.Regions {
		total += r.Seats
	}
	return total
}

// MajorityThreshold is the seat count needed for a majority government.
func (d *Dataset) MajorityThreshold() int {
	return d.TotalSeats()/2 + 1
}

// Event looks up an event card by ID.
func (d *Dataset) Event(id string) (EventCard, bool) {
	for _, e := range d.Events {
		if e.ID == id {
			return e, true
		}
	}
	return EventCard{}, false
}

// Policy looks up a policy card by ID.
func (d *Dataset) Policy(id string) (PolicyCard, bool) {
	for _, p := range d.Policies {
		if p.ID == id {
			return p, true
		}
	}
	return PolicyCard{}, false
}

// BaselineSupport returns the starting support of a party in a region (0 if absent).
func (d *Dataset) BaselineSupport(region RegionID, party PartyID) float64 {
	return d.Baseline[region][party]
}

func sortedRegionKeys[V any](m map[RegionID]V) []RegionID {
	keys := make([]RegionID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedPartyKeys[V any](m map[PartyID]V) []PartyID {
	keys := make([]PartyID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
