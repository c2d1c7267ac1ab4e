// Package config provides YAML-based rules loading and difficulty
// presets for the campaign engine.
package config

import (
	"fmt"
	"sort"
)

// Rules contains every tunable constant of the simulation.
type Rules struct {
	Seats      SeatRules                      `yaml:"seats"`
	Campaign   CampaignRules                  `yaml:"campaign"`
	Support    SupportRules                   `yaml:"support"`
	AI         AIRules                        `yaml:"ai"`
	Drift      DriftRules                     `yaml:"drift"`
	Events     EventRules                     `yaml:"events"`
	Scoring    ScoringRules                   `yaml:"scoring"`
	Difficulty map[Difficulty]DifficultyRules `yaml:"difficulty"`
}

// SeatRules defines the seat allocation model.
type SeatRules struct {
	Exponent float64 `yaml:"exponent"` // FPTP exaggeration power applied to support
}

// CampaignRules defines the player's campaign action.
type CampaignRules struct {
	Cost       int     `yaml:"cost"`
	Bonus      float64 `yaml:"bonus"`
	SupportCap float64 `yaml:"support_cap"`
	TokenCap   int     `yaml:"token_cap"` // Max campaign actions per region per cycle
}

// SupportRules defines the bounds applied after event and drift mutations.
type SupportRules struct {
	Ceiling float64 `yaml:"ceiling"`
}

// AIRules defines how opponents spend their budget.
type AIRules struct {
	ActionCost int     `yaml:"action_cost"`
	Noise      float64 `yaml:"noise"` // Symmetric, so a spend moves support by bonus±noise
	SupportCap float64 `yaml:"support_cap"`
}

// DriftRules defines the between-cycle regression toward baseline.
type DriftRules struct {
	Rate  float64 `yaml:"rate"`
	Noise float64 `yaml:"noise"`
}

// EventRules defines how many event cards are drawn each cycle.
type EventRules struct {
	TwoEventChance float64 `yaml:"two_event_chance"`
}

// ScoringRules defines per-election bonuses and the final grade table.
type ScoringRules struct {
	MajorityBonus       int         `yaml:"majority_bonus"`
	MinorityBonus       int         `yaml:"minority_bonus"`
	OppositionBonus     int         `yaml:"opposition_bonus"`
	OppositionThreshold int         `yaml:"opposition_threshold"`
	Grades              []GradeBand `yaml:"grades"`
}

// GradeBand maps a minimum score to a letter grade.
type GradeBand struct {
	Min   int    `yaml:"min"`
	Grade string `yaml:"grade"`
	Label string `yaml:"label"`
}

// DifficultyRules holds the budgets for one difficulty preset.
type DifficultyRules struct {
	PlayerPoints int     `yaml:"player_points"`
	AIPoints     int     `yaml:"ai_points"`
	AIBonus      float64 `yaml:"ai_bonus"`
}

// ForDifficulty returns the budgets for a preset.
func (r Rules) ForDifficulty(d Difficulty) (DifficultyRules, bool) {
	dr, ok := r.Difficulty[d]
	return dr, ok
}

// SortedGrades returns the grade bands ordered from highest minimum to lowest.
func (r Rules) SortedGrades() []GradeBand {
	grades := make([]GradeBand, len(r.Scoring.Grades))
	copy(grades, r.Scoring.Grades)
	sort.SliceStable(grades, func(i, j int) bool {
		return grades[i].Min > grades[j].Min
	})
	return grades
}

// Validate checks that the rules can drive a game.
func (r Rules) Validate() error {
	if r.Seats.Exponent <= 0 {
		return fmt.Errorf("config: seat exponent must be positive, got %v", r.Seats.Exponent)
	}
	if r.Campaign.Cost <= 0 {
		return fmt.Errorf("config: campaign cost must be positive, got %d", r.Campaign.Cost)
	}
	if r.Campaign.TokenCap <= 0 {
		return fmt.Errorf("config: campaign token cap must be positive, got %d", r.Campaign.TokenCap)
	}
	if r.AI.ActionCost <= 0 {
		return fmt.Errorf("config: ai action cost must be positive, got %d", r.AI.ActionCost)
	}
	if r.Support.Ceiling <= 0 {
		return fmt.Errorf("config: support ceiling must be positive, got %v", r.Support.Ceiling)
	}
	if r.Events.TwoEventChance < 0 || r.Events.TwoEventChance > 1 {
		return fmt.Errorf("config: two_event_chance must be in [0,1], got %v", r.Events.TwoEventChance)
	}
	if len(r.Scoring.Grades) == 0 {
		return fmt.Errorf("config: at least one grade band is required")
	}
	for _, d := range Difficulties() {
		dr, ok := r.Difficulty[d]
		if !ok {
			return fmt.Errorf("config: missing difficulty %q", d)
		}
		if dr.PlayerPoints < 0 || dr.AIPoints < 0 {
			return fmt.Errorf("config: difficulty %q has negative budget", d)
		}
	}
	return nil
}
