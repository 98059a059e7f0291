package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/abhisek/spellquest/internal/achievements"
	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote/migrations"
)

// Store is the Postgres-backed persistence for players and rounds.
type Store struct {
	db *bun.DB
}

// Open connects to Postgres at dsn.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("remote: empty postgres dsn")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	migrator := migrate.NewMigrator(s.db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("remote: init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("remote: migrate: %w", err)
	}
	return nil
}

// EnsurePlayer returns the player row for a username, creating it on
// first sight.
func (s *Store) EnsurePlayer(ctx context.Context, username string) (*Player, error) {
	if username == "" {
		return nil, errors.New("remote: empty username")
	}

	p := new(Player)
	err := s.db.NewSelect().Model(p).
		Where("username = ?", username).
		Scan(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("remote: look up player %q: %w", username, err)
	}

	p = &Player{ID: uuid.NewString(), Username: username}
	_, err = s.db.NewInsert().Model(p).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("remote: create player %q: %w", username, err)
	}

	// A concurrent writer may have won the conflict; read back the row
	// that actually exists.
	if err := s.db.NewSelect().Model(p).
		Where("username = ?", username).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("remote: read back player %q: %w", username, err)
	}
	return p, nil
}

// SaveRecord uploads a finished round. Saving an ID that already
// exists is a no-op, which makes retried syncs safe.
func (s *Store) SaveRecord(ctx context.Context, r *history.GameResult) error {
	rec, err := toRecord(r)
	if err != nil {
		return err
	}
	_, err = s.db.NewInsert().Model(rec).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remote: save record %s: %w", r.ID, err)
	}
	return nil
}

// FetchHistory returns the player's rounds for this app, newest first.
func (s *Store) FetchHistory(ctx context.Context, playerID string) ([]*history.GameResult, error) {
	var recs []GameRecord
	err := s.db.NewSelect().Model(&recs).
		Where("player_id = ?", playerID).
		Where("game_id = ?", AppID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch history: %w", err)
	}

	out := make([]*history.GameResult, 0, len(recs))
	for _, rec := range recs {
		var r history.GameResult
		if err := json.Unmarshal(rec.Payload, &r); err != nil {
			return nil, fmt.Errorf("remote: decode record %s: %w", rec.ID, err)
		}
		r.PendingSync = false
		out = append(out, &r)
	}
	return out, nil
}

func toRecord(r *history.GameResult) (*GameRecord, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("remote: encode record %s: %w", r.ID, err)
	}
	settings, err := json.Marshal(r.Settings)
	if err != nil {
		return nil, fmt.Errorf("remote: encode settings for %s: %w", r.ID, err)
	}
	return &GameRecord{
		ID:            r.ID,
		PlayerID:      r.UserID,
		GameID:        AppID,
		Score:         r.Score,
		ChallengeMode: r.Settings.ChallengeMode,
		GameDuration:  r.QuizDuration,
		PlayerLevel:   string(r.Settings.Difficulty),
		Achievement:   topAchievement(r),
		GameSettings:  settings,
		Payload:       payload,
		CreatedAt:     r.CompletedAt,
	}, nil
}

// topAchievement picks the highest-ranked badge for the flat
// leaderboard column; the full list lives in the payload.
func topAchievement(r *history.GameResult) string {
	earned := achievements.Check(
		r.CorrectAnswers,
		r.TotalQuestions,
		r.BestStreak,
		r.Settings,
	)
	if len(earned) == 0 {
		return ""
	}
	return earned[0].ID
}
