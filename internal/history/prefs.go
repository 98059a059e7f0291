package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/spellquest/internal/quiz"
)

// ErrNoPreferences reports a load before any preferences were stored.
var ErrNoPreferences = errors.New("no preferences saved")

// Preferences is the player's identity and last-used configuration.
type Preferences struct {
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName"`
	Settings    quiz.Settings `json:"settings"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// SavePreferences upserts the single preferences row.
func (s *Store) SavePreferences(ctx context.Context, p *Preferences) error {
	p.LastUpdated = time.Now().UTC()
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, payload, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET payload = excluded.payload,
		                                updated_at = excluded.updated_at`,
		string(payload), p.LastUpdated.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// LoadPreferences returns the stored preferences, or ErrNoPreferences.
func (s *Store) LoadPreferences(ctx context.Context) (*Preferences, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM preferences WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPreferences
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	var p Preferences
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &p, nil
}

// ClearPreferences removes the stored preferences.
func (s *Store) ClearPreferences(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}
