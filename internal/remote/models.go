// Package remote persists players and finished rounds in a shared
// Postgres database so scores follow the player across machines.
package remote

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// App identity within the shared game database. Several games write to
// the same tables; the app ID partitions their records.
const (
	AppName = "spellquest"
	AppID   = "ea0f66f6-1998-4b7e-b29f-93191ef2ed8e"
)

// Player is a row in game_players.
type Player struct {
	bun.BaseModel `bun:"table:game_players,alias:p"`

	ID        string    `bun:"id,pk"`
	Username  string    `bun:"username,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero"`
}

// GameRecord is a row in game_history. The flat columns support
// cross-game leaderboards; payload carries the full round for this
// app's own history view.
type GameRecord struct {
	bun.BaseModel `bun:"table:game_history,alias:g"`

	ID            string          `bun:"id,pk"`
	PlayerID      string          `bun:"player_id,notnull"`
	GameID        string          `bun:"game_id,notnull"`
	Score         int             `bun:"score,notnull"`
	ChallengeMode string          `bun:"challenge_mode"`
	GameDuration  int             `bun:"game_duration"`
	PlayerLevel   string          `bun:"player_level"`
	Achievement   string          `bun:"achievement"`
	GameSettings  json.RawMessage `bun:"game_settings,type:jsonb"`
	Payload       json.RawMessage `bun:"payload,type:jsonb,notnull"`
	CreatedAt     time.Time       `bun:"created_at,nullzero"`
}
