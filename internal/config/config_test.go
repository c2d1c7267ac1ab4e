package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedRulesMatchDefaults(t *testing.T) {
	parsed, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, DefaultRules()) {
		t.Errorf("embedded rules differ from DefaultRules():\n%+v\nwant\n%+v", parsed, DefaultRules())
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Normal", DifficultyNormal, false},
		{" hard ", DifficultyHard, false},
		{"", DifficultyNormal, false},
		{"fixed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDifficultyBudgets(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		diff   Difficulty
		player int
		ai     int
		bonus  float64
	}{
		{DifficultyEasy, 14, 6, 4},
		{DifficultyNormal, 10, 10, 6},
		{DifficultyHard, 7, 14, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.diff), func(t *testing.T) {
			dr, ok := rules.ForDifficulty(tt.diff)
			if !ok {
				t.Fatalf("ForDifficulty(%q) not found", tt.diff)
			}
			if dr.PlayerPoints != tt.player || dr.AIPoints != tt.ai || dr.AIBonus != tt.bonus {
				t.Errorf("ForDifficulty(%q) = %+v, want player=%d ai=%d bonus=%v",
					tt.diff, dr, tt.player, tt.ai, tt.bonus)
			}
		})
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte("campaign:\n  bonus: 9\ndifficulty:\n  hard:\n    player_points: 5\n    ai_points: 16\n    ai_bonus: 9\n")

	rules, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if rules.Campaign.Bonus != 9 {
		t.Errorf("Campaign.Bonus = %v, want 9", rules.Campaign.Bonus)
	}
	if rules.Campaign.Cost != 2 {
		t.Errorf("Campaign.Cost = %d, want default 2", rules.Campaign.Cost)
	}
	if rules.Difficulty[DifficultyHard].PlayerPoints != 5 {
		t.Errorf("hard player points = %d, want 5", rules.Difficulty[DifficultyHard].PlayerPoints)
	}
	if rules.Difficulty[DifficultyEasy].PlayerPoints != 14 {
		t.Errorf("easy player points = %d, want default 14", rules.Difficulty[DifficultyEasy].PlayerPoints)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero exponent", "seats:\n  exponent: 0\n"},
		{"negative cost", "campaign:\n  cost: -1\n"},
		{"chance above one", "events:\n  two_event_chance: 1.5\n"},
		{"empty grades", "scoring:\n  grades: []\n"},
		{"malformed yaml", "seats: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.data)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("drift:\n  rate: 0.5\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if rules.Drift.Rate != 0.5 {
		t.Errorf("Drift.Rate = %v, want 0.5", rules.Drift.Rate)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing custom path succeeded, want error")
	}
}

func TestSortedGrades(t *testing.T) {
	rules := DefaultRules()
	rules.Scoring.Grades = []GradeBand{
		{Min: 0, Grade: "F"},
		{Min: 2500, Grade: "S"},
		{Min: 1000, Grade: "C"},
	}

	got := rules.SortedGrades()
	want := []string{"S", "C", "F"}
	for i, g := range got {
		if g.Grade != want[i] {
			t.Errorf("SortedGrades()[%d] = %s, want %s", i, g.Grade, want[i])
		}
	}
	if rules.Scoring.Grades[0].Grade != "F" {
		t.Error("SortedGrades() mutated the receiver")
	}
}
