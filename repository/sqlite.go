package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lguibr/arbiter/models"
)

// SQLiteRepository implements Repository against the games table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an already-opened, already-migrated handle.
func NewSQLiteRepository(conn *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: conn}
}

func (r *SQLiteRepository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS games (
		game_id TEXT PRIMARY KEY,
		game_type TEXT NOT NULL,
		game_state TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("%w: init games table: %v", models.ErrStorage, err)
	}
	return nil
}

func (r *SQLiteRepository) Save(ctx context.Context, gameID models.GameID, gameType, payload string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games (game_id, game_type, game_state) VALUES (?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET game_type = excluded.game_type, game_state = excluded.game_state
	`, gameID.String(), gameType, payload)
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", models.ErrStorage, gameID, err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, gameID models.GameID, expectedType string) (string, bool, error) {
	var gameType, payload string
	err := r.db.QueryRowContext(ctx, `SELECT game_type, game_state FROM games WHERE game_id = ?`, gameID.String()).
		Scan(&gameType, &payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: load %s: %v", models.ErrStorage, gameID, err)
	}
	if gameType != expectedType {
		return "", false, nil
	}
	return payload, true, nil
}

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT game_id, game_type, game_state FROM games`)
	if err != nil {
		return nil, fmt.Errorf("%w: load all: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var rawID, gameType, payload string
		if err := rows.Scan(&rawID, &gameType, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", models.ErrStorage, err)
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			log.Printf("repository: skipping row with malformed game_id %q: %v", rawID, err)
			continue
		}

		out = append(out, Row{GameID: id, GameType: gameType, Payload: payload})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", models.ErrStorage, err)
	}
	return out, nil
}
