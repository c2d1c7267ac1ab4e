package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Symbolic strings used by the YAML format.
const (
	partyRefSelf      = "SELF"
	partyRefLeader    = "LEADER"
	choicePlaceholder = "CHOICE"
)

// YAMLDataset represents the YAML structure of a data set file.
type YAMLDataset struct {
	Name            string                        `yaml:"name"`
	ExpectedSeats   int                           `yaml:"expected_seats,omitempty"`
	DefaultOpponent string                        `yaml:"default_opponent"`
	Parties         []YAMLParty                   `yaml:"parties"`
	Regions         []YAMLRegion                  `yaml:"regions"`
	Groupings       map[string][]string           `yaml:"groupings"`
	Baseline        map[string]map[string]float64 `yaml:"baseline"`
	Schedule        []int                         `yaml:"schedule"`
	Events          []YAMLEvent                   `yaml:"events"`
	Policies        []YAMLPolicy                  `yaml:"policies"`
}

// YAMLParty represents a party entry.
type YAMLParty struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	ShortName       string     `yaml:"short_name"`
	Description     string     `yaml:"description,omitempty"`
	Ideology        string     `yaml:"ideology,omitempty"`
	Colors          YAMLColors `yaml:"colors"`
	EstablishedYear int        `yaml:"established_year,omitempty"`
	HomeRegion      string     `yaml:"home_region,omitempty"`
	Playable        bool       `yaml:"playable"`
}

// YAMLColors represents a party palette.
type YAMLColors struct {
	Primary string `yaml:"primary"`
	Light   string `yaml:"light"`
	Dark    string `yaml:"dark"`
}

// YAMLRegion represents a region entry.
type YAMLRegion struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Grouping string `yaml:"grouping"`
	Seats    int    `yaml:"seats"`
}

// YAMLEffect represents one effect. Exactly one of Region and Grouping is set.
type YAMLEffect struct {
	Party    string  `yaml:"party"`
	Region   string  `yaml:"region,omitempty"`
	Grouping string  `yaml:"grouping,omitempty"`
	Delta    float64 `yaml:"delta"`
}

// YAMLEvent represents an event card.
type YAMLEvent struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	MinYear     int          `yaml:"min_year"`
	MaxYear     int          `yaml:"max_year"`
	Effects     []YAMLEffect `yaml:"effects"`
}

// YAMLPolicy represents a policy card.
type YAMLPolicy struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description,omitempty"`
	Party          string       `yaml:"party"`
	Cost           int          `yaml:"cost"`
	RequiresChoice string       `yaml:"requires_choice,omitempty"`
	Effects        []YAMLEffect `yaml:"effects"`
}

// ParseYAML decodes a data set without validating it.
func ParseYAML(data []byte) (*Dataset, error) {
	var yd YAMLDataset
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yd.toDataset()
}

func (yd YAMLDataset) toDataset() (*Dataset, error) {
	ds := &Dataset{
		Name:            yd.Name,
		ExpectedSeats:   yd.ExpectedSeats,
		DefaultOpponent: PartyID(yd.DefaultOpponent),
		Groupings:       make(map[string][]RegionID, len(yd.Groupings)+1),
		Baseline:        make(map[RegionID]map[PartyID]float64, len(yd.Baseline)),
		Schedule:        append([]int(nil), yd.Schedule...),
	}

	for _, p := range yd.Parties {
		ds.Parties = append(ds.Parties, Party{
			ID:              PartyID(p.ID),
			Name:            p.Name,
			ShortName:       p.ShortName,
			Description:     p.Description,
			Ideology:        p.Ideology,
			Colors:          Colors{Primary: p.Colors.Primary, Light: p.Colors.Light, Dark: p.Colors.Dark},
			EstablishedYear: p.EstablishedYear,
			HomeRegion:      RegionID(p.HomeRegion),
			Playable:        p.Playable,
		})
	}

	all := make([]RegionID, 0, len(yd.Regions))
	for _, r := range yd.Regions {
		ds.Regions = append(ds.Regions, Region{
			ID:       RegionID(r.ID),
			Name:     r.Name,
			Grouping: r.Grouping,
			Seats:    r.Seats,
		})
		all = append(all, RegionID(r.ID))
	}

	for name, members := range yd.Groupings {
		ids := make([]RegionID, len(members))
		for i, m := range members {
			ids[i] = RegionID(m)
		}
		ds.Groupings[name] = ids
	}
	// "all" is always derived from the region list
	ds.Groupings[AllGrouping] = all

	for region, support := range yd.Baseline {
		row := make(map[PartyID]float64, len(support))
		for party, v := range support {
			row[PartyID(party)] = v
		}
		ds.Baseline[RegionID(region)] = row
	}

	for _, e := range yd.Events {
		effects, err := convertEffects(e.Effects)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		ds.Events = append(ds.Events, EventCard{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			MinYear:     e.MinYear,
			MaxYear:     e.MaxYear,
			Effects:     effects,
		})
	}

	for _, p := range yd.Policies {
		effects, err := convertEffects(p.Effects)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", p.ID, err)
		}
		ds.Policies = append(ds.Policies, PolicyCard{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Owner:          PartyID(p.Party),
			Cost:           p.Cost,
			Effects:        effects,
			RequiresChoice: ChoiceKind(p.RequiresChoice),
		})
	}

	return ds, nil
}

func convertEffects(in []YAMLEffect) ([]Effect, error) {
	out := make([]Effect, 0, len(in))
	for i, ye := range in {
		eff, err := ye.toEffect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		out = append(out, eff)
	}
	return out, nil
}

func (ye YAMLEffect) toEffect() (Effect, error) {
	eff := Effect{Party: ParsePartyRef(ye.Party), Delta: ye.Delta}

	switch {
	case ye.Region != "" && ye.Grouping != "":
		return Effect{}, ValidationError{
			Code:    "EFFECT_TARGET",
			Message: fmt.Sprintf("both region %q and grouping %q set", ye.Region, ye.Grouping),
		}
	case ye.Region == choicePlaceholder:
		eff.Target = ChoiceTarget(ChoiceRegion)
	case ye.Grouping == choicePlaceholder:
		eff.Target = ChoiceTarget(ChoiceGrouping)
	case ye.Region != "":
		eff.Target = RegionTarget(RegionID(ye.Region))
	case ye.Grouping != "":
		eff.Target = GroupingTarget(ye.Grouping)
	default:
		return Effect{}, ValidationError{
			Code:    "EFFECT_TARGET",
			Message: "neither region nor grouping set",
		}
	}
	return eff, nil
}

// ParsePartyRef converts the YAML party string to a reference.
func ParsePartyRef(s string) PartyRef {
	switch s {
	case partyRefSelf:
		return Player()
	case partyRefLeader:
		return LeadingOpponent()
	default:
		return Concrete(PartyID(s))
	}
}
