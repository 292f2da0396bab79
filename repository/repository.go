// Package repository implements the durable snapshot table the
// PersistenceWorker sits in front of. It deals only in pre-encoded payload
// strings — decoding into a concrete game state is the codec's job, one
// layer up.
package repository

import (
	"context"

	"github.com/lguibr/arbiter/models"
)

// Row is one raw (possibly corrupt) record as stored, before any decode or
// game-type validation has been attempted.
type Row struct {
	GameID   models.GameID
	GameType string
	Payload  string
}

// Repository is the durable table games(game_id, game_type, game_state).
type Repository interface {
	// Init ensures the backing table exists. Idempotent.
	Init(ctx context.Context) error
	// Save upserts a row: insert, or overwrite game_type/game_state on a
	// primary-key conflict.
	Save(ctx context.Context, gameID models.GameID, gameType, payload string) error
	// Load returns a row's payload if it exists and its game_type matches
	// expectedType. Both "absent" and "type mismatch" return found=false,
	// not an error.
	Load(ctx context.Context, gameID models.GameID, expectedType string) (payload string, found bool, err error)
	// LoadAll returns every row whose game_id parses as a UUID; rows with a
	// malformed id are logged and skipped. game_type and game_state are not
	// checked here; callers filter unregistered types and undecodable payloads.
	LoadAll(ctx context.Context) ([]Row, error)
}
