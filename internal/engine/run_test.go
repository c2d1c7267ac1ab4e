package engine

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/ocanada/internal/dataset"
)

// playCycle runs one cycle the way a simple player would.
func playCycle(t *testing.T, e *Engine, seen map[string]bool) ElectionResult {
	t.Helper()

	drawn, err := e.DrawEvents()
	if err != nil {
		t.Fatalf("%d: DrawEvents() failed: %v", e.Year(), err)
	}
	for _, c := range drawn {
		if seen[c.ID] {
			t.Fatalf("%d: event %s drawn twice", e.Year(), c.ID)
		}
		seen[c.ID] = true
		if err := e.ApplyEvent(c); err != nil {
			t.Fatalf("%d: ApplyEvent(%s) failed: %v", e.Year(), c.ID, err)
		}
	}

	for _, c := range e.AvailablePolicies() {
		choice := ""
		switch c.RequiresChoice {
		case dataset.ChoiceRegion:
			choice = "ON"
		case dataset.ChoiceGrouping:
			choice = "atlantic"
		}
		if c.Cost <= e.CampaignPoints() {
			if err := e.PlayPolicyCard(c.ID, choice); err != nil {
				t.Fatalf("%d: PlayPolicyCard(%s) failed: %v", e.Year(), c.ID, err)
			}
			break
		}
	}
	for _, r := range []dataset.RegionID{"ON", "QC", "BC", "ON"} {
		if err := e.Campaign(r); err != nil && !IsRefusal(err) {
			t.Fatalf("%d: Campaign(%s) failed: %v", e.Year(), r, err)
		}
	}

	if err := e.RunAICampaigns(); err != nil {
		t.Fatalf("%d: RunAICampaigns() failed: %v", e.Year(), err)
	}
	res, err := e.RunElection()
	if err != nil {
		t.Fatalf("%d: RunElection() failed: %v", e.Year(), err)
	}
	return res
}

func playGame(t *testing.T, e *Engine) {
	t.Helper()
	seen := make(map[string]bool)
	for {
		playCycle(t, e, seen)
		checkSupportBounds(t, e)
		if !e.Advance() {
			return
		}
		checkSupportBounds(t, e)
	}
}

func checkSupportBounds(t *testing.T, e *Engine) {
	t.Helper()
	for r, row := range e.support {
		for p, v := range row {
			if v < 0 || v > 95 {
				t.Fatalf("%d: support[%s][%s] = %v, want [0,95]", e.Year(), r, p, v)
			}
		}
	}
}

func TestFullSeededRun(t *testing.T) {
	for _, party := range []dataset.PartyID{"LPC", "CPC", "NDP"} {
		t.Run(string(party), func(t *testing.T) {
			e := newTestEngine(t, party, WithSeed(2024))
			playGame(t, e)

			history := e.History()
			if len(history) != len(e.ds.Schedule) {
				t.Fatalf("len(History()) = %d, want %d", len(history), len(e.ds.Schedule))
			}

			playerSeats, wins := 0, 0
			for i, res := range history {
				if res.Year != e.ds.Schedule[i] {
					t.Errorf("history[%d].Year = %d, want %d", i, res.Year, e.ds.Schedule[i])
				}
				if res.TotalSeats() != 338 {
					t.Errorf("%d: seats sum to %d, want 338", res.Year, res.TotalSeats())
				}
				for id, row := range res.Regions {
					region, _ := e.ds.Region(id)
					sum := 0
					for p, n := range row {
						if n < 0 {
							t.Errorf("%d: %s won %d seats in %s", res.Year, p, n, id)
						}
						sum += n
					}
					if sum != region.Seats {
						t.Errorf("%d: %s seats sum to %d, want %d", res.Year, id, sum, region.Seats)
					}
					if res.Year < 1991 && row["BQ"] > 0 {
						t.Errorf("%d: BQ won seats before founding", res.Year)
					}
					if id != "QC" && row["BQ"] > 0 {
						t.Errorf("%d: BQ won seats in %s", res.Year, id)
					}
				}
				playerSeats += res.PlayerSeats
				if res.PlayerWon {
					wins++
				}
			}

			fs := e.FinalScore()
			if fs.TotalSeats != playerSeats {
				t.Errorf("FinalScore().TotalSeats = %d, want %d", fs.TotalSeats, playerSeats)
			}
			if fs.TimesWon != wins {
				t.Errorf("FinalScore().TimesWon = %d, want %d", fs.TimesWon, wins)
			}
			if fs.Score < playerSeats {
				t.Errorf("FinalScore().Score = %d, want at least %d", fs.Score, playerSeats)
			}
			if fs.Grade.Letter == "" {
				t.Error("FinalScore().Grade is empty")
			}
			if !e.IsGameOver() {
				t.Error("IsGameOver() = false after the last election")
			}
		})
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	a := newTestEngine(t, "NDP", WithSeed(99))
	b := newTestEngine(t, "NDP", WithSeed(99))

	playGame(t, a)
	playGame(t, b)

	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("two games with the same seed diverged")
	}

	ja, err := json.Marshal(a.Snapshot())
	if err != nil {
		t.Fatalf("json.Marshal(Snapshot()) failed: %v", err)
	}
	jb, _ := json.Marshal(b.Snapshot())
	if string(ja) != string(jb) {
		t.Error("snapshot JSON differs between identical games")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	e := newTestEngine(t, "LPC")
	if err := e.PlayPolicyCard("P001", ""); err != nil {
		t.Fatalf("PlayPolicyCard(P001) failed: %v", err)
	}
	before := e.Snapshot()

	c := e.Clone(rand.New(rand.NewSource(5)))
	if !reflect.DeepEqual(before, c.Snapshot()) {
		t.Fatal("Clone() snapshot differs from original")
	}

	if err := c.Campaign("ON"); err != nil {
		t.Fatalf("clone Campaign(ON) failed: %v", err)
	}
	if err := c.PlayPolicyCard("P003", ""); err != nil {
		t.Fatalf("clone PlayPolicyCard(P003) failed: %v", err)
	}
	if _, err := c.DrawEvents(); err != nil {
		t.Fatalf("clone DrawEvents() failed: %v", err)
	}
	if _, err := c.RunElection(); err != nil {
		t.Fatalf("clone RunElection() failed: %v", err)
	}
	c.Advance()

	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("mutating a clone changed the original")
	}
}
