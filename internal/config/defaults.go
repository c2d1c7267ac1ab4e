package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the hardcoded rule set.
// defaults/rules.yaml carries the same values.
func DefaultRules() Rules {
	return Rules{
		Seats: SeatRules{
			Exponent: 1.6,
		},
		Campaign: CampaignRules{
			Cost:       2,
			Bonus:      7,
			SupportCap: 90,
			TokenCap:   3,
		},
		Support: SupportRules{
			Ceiling: 95,
		},
		AI: AIRules{
			ActionCost: 2,
			Noise:      2,
			SupportCap: 90,
		},
		Drift: DriftRules{
			Rate:  0.15,
			Noise: 3,
		},
		Events: EventRules{
			TwoEventChance: 0.4,
		},
		Scoring: ScoringRules{
			MajorityBonus:       100,
			MinorityBonus:       50,
			OppositionBonus:     25,
			OppositionThreshold: 55,
			Grades: []GradeBand{
				{Min: 2500, Grade: "S", Label: "Political Legend"},
				{Min: 2000, Grade: "A", Label: "Dominant Force"},
				{Min: 1500, Grade: "B", Label: "Major Player"},
				{Min: 1000, Grade: "C", Label: "Contender"},
				{Min: 500, Grade: "D", Label: "Minor Party"},
				{Min: 0, Grade: "F", Label: "Fringe Party"},
			},
		},
		Difficulty: map[Difficulty]DifficultyRules{
			DifficultyEasy:   {PlayerPoints: 14, AIPoints: 6, AIBonus: 4},
			DifficultyNormal: {PlayerPoints: 10, AIPoints: 10, AIBonus: 6},
			DifficultyHard:   {PlayerPoints: 7, AIPoints: 14, AIBonus: 8},
		},
	}
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultRulesYAML
}
