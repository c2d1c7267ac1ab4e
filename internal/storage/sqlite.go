// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ocanada/internal/engine"
)

// Store manages the SQLite database connection for the run leaderboard.
type Store struct {
	db *sqlx.DB
}

// Run is one finished game.
type Run struct {
	ID         string
	Party      string
	Difficulty string
	Strategy   string
	Seed       int64
	Score      int
	Grade      string
	TimesWon   int
	TotalSeats int
	Elections  int
	CreatedAt  time.Time
}

// ElectionRecord is the stored summary of one election in a run.
type ElectionRecord struct {
	RunID       string `db:"run_id"`
	Year        int    `db:"year"`
	Winner      string `db:"winner"`
	WinnerSeats int    `db:"winner_seats"`
	Government  string `db:"government"`
	PlayerSeats int    `db:"player_seats"`
	PlayerWon   bool   `db:"player_won"`
	ScoreGained int    `db:"score_gained"`
}

// PartyStats aggregates every stored run for one party.
type PartyStats struct {
	Party    string  `db:"party"`
	Runs     int     `db:"runs"`
	Best     int     `db:"best"`
	Average  float64 `db:"average"`
	TimesWon int     `db:"times_won"`
}

// runRow mirrors the runs table.
type runRow struct {
	ID         string `db:"id"`
	Party      string `db:"party"`
	Difficulty string `db:"difficulty"`
	Strategy   string `db:"strategy"`
	Seed       int64  `db:"seed"`
	Score      int    `db:"score"`
	Grade      string `db:"grade"`
	TimesWon   int    `db:"times_won"`
	TotalSeats int    `db:"total_seats"`
	Elections  int    `db:"elections"`
	CreatedAt  int64  `db:"created_at"` // Unix seconds
}

func (r runRow) run() Run {
	return Run{
		ID:         r.ID,
		Party:      r.Party,
		Difficulty: r.Difficulty,
		Strategy:   r.Strategy,
		Seed:       r.Seed,
		Score:      r.Score,
		Grade:      r.Grade,
		TimesWon:   r.TimesWon,
		TotalSeats: r.TotalSeats,
		Elections:  r.Elections,
		CreatedAt:  time.Unix(r.CreatedAt, 0),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			party TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			strategy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			grade TEXT NOT NULL,
			times_won INTEGER NOT NULL DEFAULT 0,
			total_seats INTEGER NOT NULL DEFAULT 0,
			elections INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_party ON runs(party, score DESC);

		CREATE TABLE IF NOT EXISTS elections (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			winner TEXT NOT NULL,
			winner_seats INTEGER NOT NULL,
			government TEXT NOT NULL,
			player_seats INTEGER NOT NULL,
			player_won INTEGER NOT NULL,
			score_gained INTEGER NOT NULL,
			PRIMARY KEY (run_id, year)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and its election history in one
// transaction. A run without an ID gets a new UUID, which is returned.
func (s *Store) SaveRun(run Run, history []engine.ElectionResult) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := runRow{
		ID:         run.ID,
		Party:      run.Party,
		Difficulty: run.Difficulty,
		Strategy:   run.Strategy,
		Seed:       run.Seed,
		Score:      run.Score,
		Grade:      run.Grade,
		TimesWon:   run.TimesWon,
		TotalSeats: run.TotalSeats,
		Elections:  run.Elections,
		CreatedAt:  run.CreatedAt.Unix(),
	}
	_, err = tx.NamedExec(`INSERT INTO runs
		(id, party, difficulty, strategy, seed, score, grade, times_won, total_seats, elections, created_at)
		VALUES (:id, :party, :difficulty, :strategy, :seed, :score, :grade, :times_won, :total_seats, :elections, :created_at)`,
		row)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for _, res := range history {
		rec := ElectionRecord{
			RunID:       run.ID,
			Year:        res.Year,
			Winner:      string(res.Winner),
			WinnerSeats: res.WinnerSeats,
			Government:  string(res.Government),
			PlayerSeats: res.PlayerSeats,
			PlayerWon:   res.PlayerWon,
			ScoreGained: res.ScoreGained,
		}
		_, err := tx.NamedExec(`INSERT INTO elections
			(run_id, year, winner, winner_seats, government, player_seats, player_won, score_gained)
			VALUES (:run_id, :year, :winner, :winner_seats, :government, :player_seats, :player_won, :score_gained)`,
			rec)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save election %d: %w", res.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// TopRuns retrieves the best runs, optionally for one party ("" for all).
// Results are ordered by score descending, newest first on ties.
func (s *Store) TopRuns(party string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []runRow
	err := s.db.Select(&rows,
		`SELECT id, party, difficulty, strategy, seed, score, grade, times_won, total_seats, elections, created_at
		 FROM runs
		 WHERE ? = '' OR party = ?
		 ORDER BY score DESC, created_at DESC
		 LIMIT ?`,
		party, party, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs := make([]Run, len(rows))
	for i, r := range rows {
		runs[i] = r.run()
	}
	return runs, nil
}

// GetRun retrieves one run by ID.
func (s *Store) GetRun(id string) (Run, error) {
	var row runRow
	err := s.db.Get(&row,
		`SELECT id, party, difficulty, strategy, seed, score, grade, times_won, total_seats, elections, created_at
		 FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("storage: run %s not found: %w", id, err)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return row.run(), nil
}

// RunElections retrieves the election history of a run, oldest first.
func (s *Store) RunElections(runID string) ([]ElectionRecord, error) {
	var records []ElectionRecord
	err := s.db.Select(&records,
		`SELECT run_id, year, winner, winner_seats, government, player_seats, player_won, score_gained
		 FROM elections
		 WHERE run_id = ?
		 ORDER BY year`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query elections: %w", err)
	}
	return records, nil
}

// HighScore returns the highest score for a party ("" for all).
// Returns 0 if no runs exist.
func (s *Store) HighScore(party string) (int, error) {
	var score sql.NullInt64
	err := s.db.Get(&score, "SELECT MAX(score) FROM runs WHERE ? = '' OR party = ?", party, party)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates stored runs per party, ordered by party.
func (s *Store) Stats() ([]PartyStats, error) {
	var stats []PartyStats
	err := s.db.Select(&stats,
		`SELECT party,
		        COUNT(*) AS runs,
		        MAX(score) AS best,
		        AVG(score) AS average,
		        SUM(times_won) AS times_won
		 FROM runs
		 GROUP BY party
		 ORDER BY party`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return stats, nil
}

// Clear deletes every stored run.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM elections"); err != nil {
		return fmt.Errorf("storage: cannot clear elections: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
