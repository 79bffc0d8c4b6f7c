// Package storage provides SQLite-based persistence for match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord is a stored match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Variant   string
	EndReason string
	Winners   []string // color names
	Draw      bool
	Turns     int
	Rounds    int
	Duration  time.Duration
	CreatedAt time.Time
	Scores    []ScoreRecord // in turn order
}

// ScoreRecord is the stored tally of one color in a match.
type ScoreRecord struct {
	Color     string
	Player    string
	Score     int
	Placed    int
	Squares   int
	Fallbacks int
	Winner    bool
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows a single writer; sessions share one connection.
	db.SetMaxOpenConns(1)

	// Test connection
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
			match_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			winners TEXT NOT NULL DEFAULT '',
			draw INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			rounds INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_variant ON matches(variant);

		CREATE TABLE IF NOT EXISTS match_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id),
			seat INTEGER NOT NULL,
			color TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			squares INTEGER NOT NULL,
			fallbacks INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_match_scores_match ON match_scores(match_id);
		CREATE INDEX IF NOT EXISTS idx_match_scores_color ON match_scores(color);
		CREATE INDEX IF NOT EXISTS idx_match_scores_player ON match_scores(player);
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

// SaveMatch records a finished match and its per-color scores in one
// transaction. Returns the ID of the inserted match row.
func (s *Store) SaveMatch(result multiplayer.MatchResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	winners := make([]string, len(result.Winners))
	for i, c := range result.Winners {
		winners[i] = c.String()
	}

	res, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, variant, end_reason, winners, draw, turns, rounds, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(result.MatchID),
		result.Variant,
		result.Reason.String(),
		strings.Join(winners, ","),
		result.Draw,
		result.Turns,
		result.Rounds,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for seat, cr := range result.Colors {
		if _, err := tx.Exec(
			`INSERT INTO match_scores
			 (match_id, seat, color, player, score, placed, squares, fallbacks, winner)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(result.MatchID), seat, cr.Color.String(), cr.Player,
			cr.Score, cr.Placed, cr.Squares, cr.Fallbacks, cr.Winner,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save score of %s: %w", cr.Color, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(result multiplayer.MatchResult) error {
	_, err := s.SaveMatch(result)
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

const matchColumns = `id, match_id, variant, end_reason, winners, draw, turns, rounds, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var (
		rec        MatchRecord
		winners    string
		durationMs int64
		createdAt  any
	)
	err := row.Scan(&rec.ID, &rec.MatchID, &rec.Variant, &rec.EndReason, &winners,
		&rec.Draw, &rec.Turns, &rec.Rounds, &durationMs, &createdAt)
	if err != nil {
		return rec, err
	}
	if winners != "" {
		rec.Winners = strings.Split(winners, ",")
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match with its scores. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	rec, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if rec.Scores, err = s.scores(rec.MatchID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range records {
		if records[i].Scores, err = s.scores(records[i].MatchID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *Store) scores(matchID string) ([]ScoreRecord, error) {
	rows, err := s.db.Query(
		`SELECT color, player, score, placed, squares, fallbacks, winner
		 FROM match_scores
		 WHERE match_id = ?
		 ORDER BY seat`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var scores []ScoreRecord
	for rows.Next() {
		var sr ScoreRecord
		if err := rows.Scan(&sr.Color, &sr.Player, &sr.Score, &sr.Placed, &sr.Squares, &sr.Fallbacks, &sr.Winner); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score row: %w", err)
		}
		scores = append(scores, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return scores, nil
}

// Stats contains aggregated results for one color or player.
type Stats struct {
	Key       string
	Games     int
	Wins      int
	HighScore int
	AvgScore  float64
	Fallbacks int
}

// ColorStats aggregates stored scores per color.
func (s *Store) ColorStats() (map[string]*Stats, error) {
	return s.statsBy("color")
}

// PlayerStats aggregates stored scores per player.
func (s *Store) PlayerStats() (map[string]*Stats, error) {
	return s.statsBy("player")
}

// statsBy groups match_scores by column, which must be a trusted identifier.
func (s *Store) statsBy(column string) (map[string]*Stats, error) {
	rows, err := s.db.Query(
		`SELECT ` + column + `, COUNT(*), COALESCE(SUM(winner), 0), MAX(score), AVG(score), SUM(fallbacks)
		 FROM match_scores
		 GROUP BY ` + column,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get %s stats: %w", column, err)
	}
	defer rows.Close()

	stats := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.Key, &st.Games, &st.Wins, &st.HighScore, &st.AvgScore, &st.Fallbacks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.Key] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
