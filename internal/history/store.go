package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/spellquest/internal/quiz"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local SQLite database holding game history and player
// preferences.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS game_results (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL DEFAULT '',
			completed_at TEXT NOT NULL,
			pending_sync INTEGER NOT NULL DEFAULT 0,
			payload      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_results_completed
			ON game_results (completed_at DESC)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveResult inserts a finished round and trims the table to the
// retention cap, oldest rounds first.
func (s *Store) SaveResult(ctx context.Context, r *GameResult) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO game_results (id, user_id, completed_at, pending_sync, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		boolToInt(r.PendingSync), string(payload))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM game_results WHERE id NOT IN (
			SELECT id FROM game_results ORDER BY completed_at DESC LIMIT ?
		)`, quiz.MaxHistoryEntries)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return tx.Commit()
}

// LoadAll returns saved rounds, newest first.
func (s *Store) LoadAll(ctx context.Context) ([]*GameResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM game_results ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Pending returns rounds that have not reached the remote store yet,
// oldest first so syncing preserves order.
func (s *Store) Pending(ctx context.Context) ([]*GameResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM game_results WHERE pending_sync = 1
		 ORDER BY completed_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// MarkSynced clears the pending flag on the given rounds.
func (s *Store) MarkSynced(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		res, err := s.db.ExecContext(ctx,
			`UPDATE game_results
			 SET pending_sync = 0,
			     payload = json_remove(payload, '$.pendingSync')
			 WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("mark synced %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("mark synced: unknown result %s", id)
		}
	}
	return nil
}

// ClearHistory deletes every saved round.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_results`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]*GameResult, error) {
	var out []*GameResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r GameResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SPELLQUEST_DB environment variable
// 2. $XDG_DATA_HOME/spellquest/spellquest.db
// 3. ~/.local/share/spellquest/spellquest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SPELLQUEST_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "spellquest", "spellquest.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
