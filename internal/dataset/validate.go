package dataset

import (
	"errors"
	"fmt"
)

// ValidationError contains details about a validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks every structural invariant of the data set and joins all failures.
func (d *Dataset) Validate() error {
	problems := d.Problems()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Problems returns every validation failure in a stable order.
func (d *Dataset) Problems() []ValidationError {
	v := &validator{ds: d}
	v.parties()
	v.regions()
	v.groupings()
	v.baseline()
	v.schedule()
	v.events()
	v.policies()
	return v.problems
}

type validator struct {
	ds       *Dataset
	problems []ValidationError
}

func (v *validator) add(code, format string, args ...any) {
	v.problems = append(v.problems, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) parties() {
	if len(v.ds.Parties) == 0 {
		v.add("NO_PARTIES", "data set defines no parties")
		return
	}
	seen := make(map[PartyID]bool)
	playable := 0
	for _, p := range v.ds.Parties {
		if p.ID == "" || p.ID == AnyParty {
			v.add("PARTY_ID", "party id %q is reserved or empty", p.ID)
		}
		if seen[p.ID] {
			v.add("DUPLICATE_ID", "party %s defined twice", p.ID)
		}
		seen[p.ID] = true
		if p.HomeRegion != "" {
			if _, ok := v.ds.Region(p.HomeRegion); !ok {
				v.add("UNKNOWN_REGION", "party %s home region %s does not exist", p.ID, p.HomeRegion)
			}
		}
		if p.Playable {
			playable++
		}
	}
	if playable == 0 {
		v.add("NO_PLAYABLE", "no party is playable")
	}
	if v.ds.DefaultOpponent != "" {
		if _, ok := v.ds.Party(v.ds.DefaultOpponent); !ok {
			v.add("UNKNOWN_PARTY", "default opponent %s does not exist", v.ds.DefaultOpponent)
		}
	}
}

func (v *validator) regions() {
	if len(v.ds.Regions) == 0 {
		v.add("NO_REGIONS", "data set defines no regions")
		return
	}
	seen := make(map[RegionID]bool)
	for _, r := range v.ds.Regions {
		if seen[r.ID] {
			v.add("DUPLICATE_ID", "region %s defined twice", r.ID)
		}
		seen[r.ID] = true
		if r.Seats < 1 {
			v.add("SEAT_COUNT", "region %s has %d seats, want at least 1", r.ID, r.Seats)
		}
		if r.Grouping != "" {
			if _, ok := v.ds.Groupings[r.Grouping]; !ok {
				v.add("UNKNOWN_GROUPING", "region %s grouping %q does not exist", r.ID, r.Grouping)
			}
		}
	}
	if v.ds.ExpectedSeats > 0 && v.ds.TotalSeats() != v.ds.ExpectedSeats {
		v.add("SEAT_TOTAL", "regions sum to %d seats, want %d", v.ds.TotalSeats(), v.ds.ExpectedSeats)
	}
}

func (v *validator) groupings() {
	for _, name := range v.ds.GroupingNames() {
		for _, id := range v.ds.Groupings[name] {
			if _, ok := v.ds.Region(id); !ok {
				v.add("UNKNOWN_REGION", "grouping %s lists unknown region %s", name, id)
			}
		}
	}

	all, ok := v.ds.Groupings[AllGrouping]
	if !ok {
		v.add("ALL_GROUPING", "grouping %q is missing", AllGrouping)
		return
	}
	count := make(map[RegionID]int)
	for _, id := range all {
		count[id]++
	}
	for _, r := range v.ds.Regions {
		if count[r.ID] != 1 {
			v.add("ALL_GROUPING", "region %s appears %d times in %q, want 1", r.ID, count[r.ID], AllGrouping)
		}
	}
	if len(all) != len(v.ds.Regions) {
		v.add("ALL_GROUPING", "%q has %d entries for %d regions", AllGrouping, len(all), len(v.ds.Regions))
	}
}

func (v *validator) baseline() {
	for _, r := range v.ds.Regions {
		row, ok := v.ds.Baseline[r.ID]
		if !ok {
			v.add("BASELINE_MISSING", "no baseline support for region %s", r.ID)
			continue
		}
		for _, p := range v.ds.Parties {
			if _, ok := row[p.ID]; !ok {
				v.add("BASELINE_MISSING", "no baseline support for %s in %s", p.ID, r.ID)
			}
		}
	}
	for _, region := range sortedRegionKeys(v.ds.Baseline) {
		if _, ok := v.ds.Region(region); !ok {
			v.add("UNKNOWN_REGION", "baseline lists unknown region %s", region)
			continue
		}
		row := v.ds.Baseline[region]
		for _, p := range sortedPartyKeys(row) {
			if _, ok := v.ds.Party(p); !ok {
				v.add("UNKNOWN_PARTY", "baseline for %s lists unknown party %s", region, p)
			}
			if val := row[p]; val < 0 || val > 100 {
				v.add("BASELINE_RANGE", "baseline %s/%s = %v, want [0,100]", region, p, val)
			}
		}
	}
}

func (v *validator) schedule() {
	if len(v.ds.Schedule) == 0 {
		v.add("SCHEDULE_EMPTY", "election schedule is empty")
		return
	}
	for i := 1; i < len(v.ds.Schedule); i++ {
		if v.ds.Schedule[i] <= v.ds.Schedule[i-1] {
			v.add("SCHEDULE_ORDER", "year %d follows %d, want strictly ascending",
				v.ds.Schedule[i], v.ds.Schedule[i-1])
		}
	}
}

func (v *validator) events() {
	seen := make(map[string]bool)
	for _, e := range v.ds.Events {
		if seen[e.ID] {
			v.add("DUPLICATE_ID", "event %s defined twice", e.ID)
		}
		seen[e.ID] = true
		if e.MinYear > e.MaxYear {
			v.add("YEAR_RANGE", "event %s min year %d > max year %d", e.ID, e.MinYear, e.MaxYear)
		}
		for i, eff := range e.Effects {
			if eff.Target.Kind == TargetChoice {
				v.add("EFFECT_TARGET", "event %s effect %d uses a caller choice", e.ID, i)
				continue
			}
			v.effect("event", e.ID, i, eff)
		}
	}
}

func (v *validator) policies() {
	seen := make(map[string]bool)
	for _, p := range v.ds.Policies {
		if seen[p.ID] {
			v.add("DUPLICATE_ID", "policy %s defined twice", p.ID)
		}
		seen[p.ID] = true
		if p.Owner != AnyParty {
			if _, ok := v.ds.Party(p.Owner); !ok {
				v.add("UNKNOWN_PARTY", "policy %s owned by unknown party %s", p.ID, p.Owner)
			}
		}
		if p.Cost < 0 {
			v.add("POLICY_COST", "policy %s has negative cost %d", p.ID, p.Cost)
		}
		switch p.RequiresChoice {
		case ChoiceNone, ChoiceRegion, ChoiceGrouping:
		default:
			v.add("CHOICE", "policy %s has unknown choice kind %q", p.ID, p.RequiresChoice)
		}

		placeholders := 0
		for i, eff := range p.Effects {
			if eff.Target.Kind == TargetChoice {
				placeholders++
				if eff.Target.Choice != p.RequiresChoice {
					v.add("CHOICE", "policy %s effect %d wants a %s choice but card requires %q",
						p.ID, i, eff.Target.Choice, p.RequiresChoice)
				}
				continue
			}
			v.effect("policy", p.ID, i, eff)
		}
		if p.RequiresChoice != ChoiceNone && placeholders == 0 {
			v.add("CHOICE", "policy %s requires a choice but no effect uses it", p.ID)
		}
	}
}

func (v *validator) effect(kind, id string, i int, eff Effect) {
	if eff.Party.Kind == PartyRefConcrete {
		if _, ok := v.ds.Party(eff.Party.ID); !ok {
			v.add("UNKNOWN_PARTY", "%s %s effect %d targets unknown party %s", kind, id, i, eff.Party.ID)
		}
	}
	switch eff.Target.Kind {
	case TargetRegion:
		if _, ok := v.ds.Region(eff.Target.Region); !ok {
			v.add("EFFECT_TARGET", "%s %s effect %d targets unknown region %s", kind, id, i, eff.Target.Region)
		}
	case TargetGrouping:
		if _, ok := v.ds.Groupings[eff.Target.Grouping]; !ok {
			v.add("EFFECT_TARGET", "%s %s effect %d targets unknown grouping %s", kind, id, i, eff.Target.Grouping)
		}
	}
}
