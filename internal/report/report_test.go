package report

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ocanada/internal/config"
	"github.com/vovakirdan/ocanada/internal/dataset"
	"github.com/vovakirdan/ocanada/internal/engine"
	"github.com/vovakirdan/ocanada/internal/storage"
)

func newReport(t *testing.T) *Report {
	t.Helper()
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("dataset.Default() failed: %v", err)
	}
	return New(ds)
}

func TestElection(t *testing.T) {
	r := newReport(t)

	tests := []struct {
		name  string
		res   engine.ElectionResult
		index int
		want  []string
	}{
		{
			name: "player majority",
			res: engine.ElectionResult{
				Year:        1988,
				National:    map[dataset.PartyID]int{"LPC": 200, "CPC": 100, "NDP": 38},
				Winner:      "LPC",
				WinnerSeats: 200,
				Government:  engine.Majority,
				PlayerSeats: 200,
				PlayerWon:   true,
				ScoreGained: 1300,
			},
			index: 0,
			want:  []string{"1988 federal election (1st of 25)", "forms a majority government with 200 of 338 seats (170 needed)", "won with 200 seats", "+1,300 points"},
		},
		{
			name: "nobody wins",
			res: engine.ElectionResult{
				Year:       1993,
				National:   map[dataset.PartyID]int{},
				Government: engine.Minority,
			},
			index: 1,
			want:  []string{"(2nd of 25)", "No party won a seat.", "lost with 0 seats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Election(tt.res, "LPC", tt.index)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Election() missing %q in:\n%s", w, got)
				}
			}
		})
	}
}

func TestElectionHidesBlocBeforeFounding(t *testing.T) {
	r := newReport(t)
	res := engine.ElectionResult{
		Year:     1988,
		National: map[dataset.PartyID]int{"LPC": 338},
		Winner:   "LPC",
	}
	bq, _ := r.ds.Party("BQ")

	if got := r.Election(res, "LPC", 0); strings.Contains(got, bq.Name) {
		t.Errorf("Election() lists %s before it was founded:\n%s", bq.Name, got)
	}
}

func TestStandings(t *testing.T) {
	r := newReport(t)
	e, err := engine.New(r.ds, "NDP", config.DifficultyNormal, engine.WithSeed(1))
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	got := r.Standings(e.NationalTotals())
	for _, p := range r.ds.Parties {
		if !strings.Contains(got, p.Name) {
			t.Errorf("Standings() missing %s", p.Name)
		}
	}
}

func TestFinal(t *testing.T) {
	r := newReport(t)
	fs := engine.FinalScore{
		Score:      12345,
		Grade:      engine.Grade{Letter: "A", Label: "Natural Governing Party"},
		TimesWon:   7,
		TotalSeats: 4321,
		Elections:  25,
	}

	got := r.Final(fs, "CPC")
	for _, w := range []string{"12,345", "A (Natural Governing Party)", "7 of 25 elections", "4,321"} {
		if !strings.Contains(got, w) {
			t.Errorf("Final() missing %q in:\n%s", w, got)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	now := time.Unix(1700000000, 0)

	if got := Leaderboard(nil, now); got != "No runs recorded yet.\n" {
		t.Errorf("Leaderboard(nil) = %q", got)
	}

	runs := []storage.Run{
		{Party: "LPC", Difficulty: "hard", Strategy: "greedy", Score: 5400, Grade: "S", TimesWon: 12, CreatedAt: now.Add(-2 * time.Hour)},
		{Party: "NDP", Difficulty: "easy", Strategy: "idle", Score: 90, Grade: "F", CreatedAt: now.Add(-3 * 24 * time.Hour)},
	}
	got := Leaderboard(runs, now)
	for _, w := range []string{"1st", "2nd", "5,400", "greedy", "2 hours ago", "3 days ago"} {
		if !strings.Contains(got, w) {
			t.Errorf("Leaderboard() missing %q in:\n%s", w, got)
		}
	}
}

func TestStats(t *testing.T) {
	if got := Stats(nil); got != "" {
		t.Errorf("Stats(nil) = %q, want empty", got)
	}

	got := Stats([]storage.PartyStats{{Party: "CPC", Runs: 3, Best: 2500, Average: 1200.5, TimesWon: 4}})
	for _, w := range []string{"CPC", "2,500", "1200.5"} {
		if !strings.Contains(got, w) {
			t.Errorf("Stats() missing %q in:\n%s", w, got)
		}
	}
}
