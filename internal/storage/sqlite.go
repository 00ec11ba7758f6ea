// Package storage provides SQLite-based persistence for finished rounds.
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

// sqliteTime is the layout SQLite's CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Round is the result of one finished round together with the settings it
// was played with.
type Round struct {
	Score        int
	Difficulty   string
	Duration     time.Duration
	JumpVelocity float64
	PipeVelocity float64
	Gravity      float64
}

// ScoreEntry represents a stored round.
type ScoreEntry struct {
	ID int64
	Round
	CreatedAt time.Time
}

// Stats holds aggregated statistics over all stored rounds.
type Stats struct {
	Rounds     int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'fixed',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			jump_velocity REAL NOT NULL DEFAULT 0,
			pipe_velocity REAL NOT NULL DEFAULT 0,
			gravity REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_score ON rounds(score DESC);
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

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r Round) (int64, error) {
	if r.Difficulty == "" {
		r.Difficulty = "fixed"
	}
	result, err := s.db.Exec(
		`INSERT INTO rounds (score, difficulty, duration_ms, jump_velocity, pipe_velocity, gravity)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Score, r.Difficulty, r.Duration.Milliseconds(), r.JumpVelocity, r.PipeVelocity, r.Gravity,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N rounds by score.
// Ties are broken by the earlier round.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, score, difficulty, duration_ms, jump_velocity, pipe_velocity, gravity, created_at
		 FROM rounds
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// AllScores retrieves all rounds (no limit), best first.
func (s *Store) AllScores() ([]ScoreEntry, error) {
	return s.query(
		`SELECT id, score, difficulty, duration_ms, jump_velocity, pipe_velocity, gravity, created_at
		 FROM rounds
		 ORDER BY score DESC, id ASC`,
	)
}

func (s *Store) query(q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.Difficulty, &durationMS,
			&e.JumpVelocity, &e.PipeVelocity, &e.Gravity, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score.
// Returns 0 if no rounds exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM rounds").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all rounds.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM rounds")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics over all rounds.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var playMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(duration_ms), 0)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &playMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMS) * time.Millisecond

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM rounds ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
