// Package storage provides SQLite-based persistence for match history.
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

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// Match is a single finished (or aborted) match record.
type Match struct {
	ID        int64
	MatchupID string
	Score     int
	Winner    string // "shooter" or "centipede"
	Ticks     int
	Seed      int64
	Completed bool
	CreatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			matchup_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			winner TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_matchup_id ON matches(matchup_id);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(matchup_id, score DESC);
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

// SaveMatch records a match result.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.MatchupID == "" {
		return 0, errors.New("storage: cannot save match: empty matchup id")
	}

	result, err := s.db.Exec(
		`INSERT INTO matches (matchup_id, score, winner, ticks, seed, completed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.MatchupID, m.Score, m.Winner, m.Ticks, m.Seed, m.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopMatches retrieves the N highest-scoring matches for a matchup.
// Ties are broken by the older match first.
func (s *Store) TopMatches(matchupID string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, matchup_id, score, winner, ticks, seed, completed, created_at
		 FROM matches
		 WHERE matchup_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		matchupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// RecentMatches retrieves the most recent matches across all matchups.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, matchup_id, score, winner, ticks, seed, completed, created_at
		 FROM matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]Match, error) {
	var matches []Match
	for rows.Next() {
		var m Match
		var createdAt any
		if err := rows.Scan(&m.ID, &m.MatchupID, &m.Score, &m.Winner, &m.Ticks, &m.Seed, &m.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// parseTime handles both time.Time and string datetime values.
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

// HighScore returns the highest score for the given matchup.
// Returns 0 if no matches exist.
func (s *Store) HighScore(matchupID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM matches WHERE matchup_id = ?",
		matchupID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearMatches deletes all matches for the given matchup.
func (s *Store) ClearMatches(matchupID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE matchup_id = ?", matchupID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// MatchupStats contains aggregated statistics for a matchup.
type MatchupStats struct {
	MatchupID     string
	Matches       int
	ShooterWins   int
	CentipedeWins int
	HighScore     int
	AvgScore      float64
	AvgTicks      float64
	LastPlayed    time.Time
}

// ShooterWinRate returns the fraction of matches won by the shooter.
func (m MatchupStats) ShooterWinRate() float64 {
	if m.Matches == 0 {
		return 0
	}
	return float64(m.ShooterWins) / float64(m.Matches)
}

const statsColumns = `COUNT(*),
	COALESCE(SUM(CASE WHEN winner = 'shooter' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN winner = 'centipede' THEN 1 ELSE 0 END), 0),
	COALESCE(MAX(score), 0),
	COALESCE(AVG(score), 0),
	COALESCE(AVG(ticks), 0),
	MAX(created_at)`

// Stats retrieves aggregated statistics for a specific matchup.
func (s *Store) Stats(matchupID string) (*MatchupStats, error) {
	stats := &MatchupStats{MatchupID: matchupID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM matches WHERE matchup_id = ?`,
		matchupID,
	).Scan(&stats.Matches, &stats.ShooterWins, &stats.CentipedeWins,
		&stats.HighScore, &stats.AvgScore, &stats.AvgTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get matchup stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every matchup that has been played.
func (s *Store) AllStats() (map[string]*MatchupStats, error) {
	rows, err := s.db.Query(
		`SELECT matchup_id, ` + statsColumns + `
		 FROM matches
		 GROUP BY matchup_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all matchup stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MatchupStats)
	for rows.Next() {
		var m MatchupStats
		var lastPlayed any
		if err := rows.Scan(&m.MatchupID, &m.Matches, &m.ShooterWins, &m.CentipedeWins,
			&m.HighScore, &m.AvgScore, &m.AvgTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.MatchupID] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
