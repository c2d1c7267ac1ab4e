package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ocanada/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 10, Grade: "F"}, nil); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopening, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	created := time.Unix(1700000000, 0)
	history := []engine.ElectionResult{
		{Year: 1988, Winner: "LPC", WinnerSeats: 180, Government: engine.Majority, PlayerSeats: 180, PlayerWon: true, ScoreGained: 280},
		{Year: 1993, Winner: "", Government: engine.Minority, PlayerSeats: 0, ScoreGained: 0},
		{Year: 1997, Winner: "CPC", WinnerSeats: 150, Government: engine.Minority, PlayerSeats: 120, ScoreGained: 145},
	}

	id, err := store.SaveRun(Run{
		Party:      "LPC",
		Difficulty: "hard",
		Strategy:   "greedy",
		Seed:       42,
		Score:      425,
		Grade:      "C",
		TimesWon:   1,
		TotalSeats: 300,
		Elections:  3,
		CreatedAt:  created,
	}, history)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned an empty ID")
	}

	run, err := store.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if run.Party != "LPC" || run.Strategy != "greedy" || run.Seed != 42 || run.Score != 425 {
		t.Errorf("GetRun() = %+v", run)
	}
	if !run.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", run.CreatedAt, created)
	}

	records, err := store.RunElections(id)
	if err != nil {
		t.Fatalf("RunElections() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 elections, got %d", len(records))
	}
	if records[0].Year != 1988 || !records[0].PlayerWon || records[0].Government != "majority" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Winner != "" || records[1].PlayerWon {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[2].ScoreGained != 145 || records[2].PlayerSeats != 120 {
		t.Errorf("records[2] = %+v", records[2])
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", Party: "NDP", Difficulty: "easy", Strategy: "spread", Grade: "F"}, nil)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() ID = %q, want fixed-id", id)
	}

	if _, err := store.SaveRun(Run{ID: "fixed-id", Party: "NDP", Difficulty: "easy", Strategy: "spread", Grade: "F"}, nil); err == nil {
		t.Error("SaveRun() with a duplicate ID succeeded")
	}
}

func TestStoreDuplicateElectionRollsBack(t *testing.T) {
	store := openTestStore(t)

	history := []engine.ElectionResult{{Year: 1988}, {Year: 1988}}
	if _, err := store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Grade: "F"}, history); err == nil {
		t.Fatal("SaveRun() with duplicate election years succeeded")
	}

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected failed save to leave no runs, got %d", len(runs))
	}
}

func TestStoreGetRunMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetRun("nope"); err == nil {
		t.Error("GetRun() of a missing run succeeded")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for i, party := range []string{"LPC", "CPC", "LPC", "NDP", "LPC"} {
		_, err := store.SaveRun(Run{
			Party:      party,
			Difficulty: "normal",
			Strategy:   "idle",
			Score:      (i + 1) * 100,
			Grade:      "F",
		}, nil)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		party  string
		limit  int
		scores []int
	}{
		{"all parties", "", 10, []int{500, 400, 300, 200, 100}},
		{"limited", "", 2, []int{500, 400}},
		{"one party", "LPC", 10, []int{500, 300, 100}},
		{"default limit", "CPC", 0, []int{200}},
		{"no runs", "BQ", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.TopRuns(tt.party, tt.limit)
			if err != nil {
				t.Fatalf("TopRuns() failed: %v", err)
			}
			if len(runs) != len(tt.scores) {
				t.Fatalf("Expected %d runs, got %d", len(tt.scores), len(runs))
			}
			for i, want := range tt.scores {
				if runs[i].Score != want {
					t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, want)
				}
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no runs, got %d", high)
	}

	store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 100, Grade: "F"}, nil)
	store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 300, Grade: "F"}, nil)
	store.SaveRun(Run{Party: "CPC", Difficulty: "normal", Strategy: "idle", Score: 700, Grade: "F"}, nil)

	high, err = store.HighScore("LPC")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected LPC high score of 300, got %d", high)
	}

	high, _ = store.HighScore("")
	if high != 700 {
		t.Errorf("Expected overall high score of 700, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 100, TimesWon: 1, Grade: "F"}, nil)
	store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 300, TimesWon: 2, Grade: "F"}, nil)
	store.SaveRun(Run{Party: "CPC", Difficulty: "normal", Strategy: "idle", Score: 50, Grade: "F"}, nil)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 parties, got %d", len(stats))
	}

	cpc, lpc := stats[0], stats[1]
	if cpc.Party != "CPC" || cpc.Runs != 1 || cpc.Best != 50 || cpc.TimesWon != 0 {
		t.Errorf("CPC stats = %+v", cpc)
	}
	if lpc.Party != "LPC" || lpc.Runs != 2 || lpc.Best != 300 || lpc.Average != 200 || lpc.TimesWon != 3 {
		t.Errorf("LPC stats = %+v", lpc)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.SaveRun(Run{Party: "LPC", Difficulty: "normal", Strategy: "idle", Score: 100, Grade: "F"},
		[]engine.ElectionResult{{Year: 1988}})
	store.SaveRun(Run{Party: "CPC", Difficulty: "normal", Strategy: "idle", Score: 200, Grade: "F"}, nil)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	runs, _ := store.TopRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	records, _ := store.RunElections(id)
	if len(records) != 0 {
		t.Errorf("Expected 0 elections after clear, got %d", len(records))
	}
}
