package repository

import (
	"context"
	"testing"

	"github.com/lguibr/arbiter/db"
	"github.com/lguibr/arbiter/models"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	conn, err := db.Open(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewSQLiteRepository(conn)
}

func TestSQLiteRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id := models.NewGameID()
	require.NoError(t, repo.Save(ctx, id, "tictactoe", `{"board":[]}`))

	payload, found, err := repo.Load(ctx, id, "tictactoe")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"board":[]}`, payload)
}

func TestSQLiteRepositoryLoadTypeMismatchIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id := models.NewGameID()
	require.NoError(t, repo.Save(ctx, id, "tictactoe", `{}`))

	_, found, err := repo.Load(ctx, id, "connectfour")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteRepositoryLoadMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, found, err := repo.Load(ctx, models.NewGameID(), "tictactoe")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteRepositorySaveUpserts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id := models.NewGameID()
	require.NoError(t, repo.Save(ctx, id, "tictactoe", `{"v":1}`))
	require.NoError(t, repo.Save(ctx, id, "tictactoe", `{"v":2}`))

	payload, found, err := repo.Load(ctx, id, "tictactoe")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"v":2}`, payload)
}

func TestSQLiteRepositoryLoadAllSkipsMalformedIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	good := models.NewGameID()
	require.NoError(t, repo.Save(ctx, good, "tictactoe", `{}`))

	db := repo.db
	_, err := db.ExecContext(ctx, `INSERT INTO games (game_id, game_type, game_state) VALUES (?, ?, ?)`, "not-a-uuid", "tictactoe", `{}`)
	require.NoError(t, err)

	rows, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, good, rows[0].GameID)
}
