// Package storage persists finished bot runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished bot game.
type Run struct {
	ID         int64
	Difficulty string
	Seed       int64
	Pieces     int
	Lines      int
	Score      int
	JunkLines  int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Summary aggregates every stored run of one difficulty.
type Summary struct {
	Difficulty string
	Games      int
	BestScore  int
	AvgScore   float64
	AvgLines   float64
	AvgPieces  float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at dbPath. A leading ~ expands
// to the home directory; parent directories are created as needed.
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			junk_lines INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (difficulty, seed, pieces, lines, score, junk_lines, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Difficulty, r.Seed, r.Pieces, r.Lines, r.Score, r.JunkLines, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs by score. An empty difficulty matches all.
func (s *Store) TopRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, seed, pieces, lines, score, junk_lines, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, lines DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Difficulty, &r.Seed, &r.Pieces, &r.Lines, &r.Score,
			&r.JunkLines, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Summaries aggregates stored runs per difficulty, ordered by name.
func (s *Store) Summaries() ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(score), AVG(score), AVG(lines), AVG(pieces), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty
		 ORDER BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var lastPlayed any
		if err := rows.Scan(&sum.Difficulty, &sum.Games, &sum.BestScore, &sum.AvgScore,
			&sum.AvgLines, &sum.AvgPieces, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		sum.LastPlayed = parseTime(lastPlayed)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Summary aggregates the runs of one difficulty. It returns a zero summary
// with Games == 0 when nothing is stored.
func (s *Store) Summary(difficulty string) (Summary, error) {
	sum := Summary{Difficulty: difficulty}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(lines), 0), COALESCE(AVG(pieces), 0), MAX(created_at)
		 FROM runs WHERE difficulty = ?`,
		difficulty,
	).Scan(&sum.Games, &sum.BestScore, &sum.AvgScore, &sum.AvgLines, &sum.AvgPieces, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Summary{}, fmt.Errorf("storage: cannot summarize %s: %w", difficulty, err)
	}
	sum.LastPlayed = parseTime(lastPlayed)
	return sum, nil
}

// ClearRuns deletes stored runs. An empty difficulty clears everything.
func (s *Store) ClearRuns(difficulty string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
