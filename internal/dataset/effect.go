package dataset

import "fmt"

// PartyRefKind selects how an effect's party is resolved.
type PartyRefKind uint8

const (
	PartyRefConcrete        PartyRefKind = iota // A named party
	PartyRefPlayer                              // Whoever the player is
	PartyRefLeadingOpponent                     // The strongest non-player party at resolution time
)

// PartyRef is the party an effect applies to.
type PartyRef struct {
	Kind PartyRefKind
	ID   PartyID // Only for PartyRefConcrete
}

// Concrete refers to a named party.
func Concrete(id PartyID) PartyRef {
	return PartyRef{Kind: PartyRefConcrete, ID: id}
}

// Player refers to the player's party.
func Player() PartyRef {
	return PartyRef{Kind: PartyRefPlayer}
}

// LeadingOpponent refers to the strongest opponent.
func LeadingOpponent() PartyRef {
	return PartyRef{Kind: PartyRefLeadingOpponent}
}

func (r PartyRef) String() string {
	switch r.Kind {
	case PartyRefPlayer:
		return partyRefSelf
	case PartyRefLeadingOpponent:
		return partyRefLeader
	default:
		return string(r.ID)
	}
}

// TargetKind selects which regions an effect touches.
type TargetKind uint8

const (
	TargetRegion   TargetKind = iota // One region
	TargetGrouping                   // Every member of a grouping
	TargetChoice                     // Supplied by the caller when a policy is played
)

// ChoiceKind says what a caller must supply for a choice target.
type ChoiceKind string

const (
	ChoiceNone     ChoiceKind = ""
	ChoiceRegion   ChoiceKind = "region"
	ChoiceGrouping ChoiceKind = "grouping"
)

// Target is the set of regions an effect applies to.
type Target struct {
	Kind     TargetKind
	Region   RegionID   // TargetRegion
	Grouping string     // TargetGrouping
	Choice   ChoiceKind // TargetChoice
}

// RegionTarget targets a single region.
func RegionTarget(id RegionID) Target {
	return Target{Kind: TargetRegion, Region: id}
}

// GroupingTarget targets every region of a grouping.
func GroupingTarget(name string) Target {
	return Target{Kind: TargetGrouping, Grouping: name}
}

// ChoiceTarget is a placeholder filled in when a policy is played.
func ChoiceTarget(kind ChoiceKind) Target {
	return Target{Kind: TargetChoice, Choice: kind}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetGrouping:
		return t.Grouping
	case TargetChoice:
		return fmt.Sprintf("%s(%s)", choicePlaceholder, t.Choice)
	default:
		return string(t.Region)
	}
}

// Effect shifts one party's support across a target by Delta points.
type Effect struct {
	Party  PartyRef
	Target Target
	Delta  float64
}

// EventCard is a historical event drawn at most once per game.
type EventCard struct {
	ID          string
	Title       string
	Description string
	MinYear     int // Inclusive
	MaxYear     int // Inclusive
	Effects     []Effect
}

// ActiveIn reports whether the card can be drawn in the given year.
func (c EventCard) ActiveIn(year int) bool {
	return c.MinYear <= year && year <= c.MaxYear
}

// Clone returns a copy that shares no slices with c.
func (c EventCard) Clone() EventCard {
	c.Effects = append([]Effect(nil), c.Effects...)
	return c
}

// PolicyCard is a one-shot player action bought with campaign points.
type PolicyCard struct {
	ID             string
	Name           string
	Description    string
	Owner          PartyID // AnyParty for universal cards
	Cost           int
	Effects        []Effect
	RequiresChoice ChoiceKind
}

// UsableBy reports whether the party may play the card.
func (c PolicyCard) UsableBy(party PartyID) bool {
	return c.Owner == AnyParty || c.Owner == party
}
