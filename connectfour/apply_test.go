package connectfour

import (
	"testing"

	"github.com/lguibr/arbiter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() (models.GameState, models.Player, models.Player) {
	alice := models.Player{ID: models.NewPlayerID(), Name: "alice"}
	bob := models.Player{ID: models.NewPlayerID(), Name: "bob"}
	return NewState([]models.Player{alice, bob}), alice, bob
}

func TestApplyDropsToLowestOpenRow(t *testing.T) {
	state, alice, bob := newTestState()

	state, err := Apply(state, alice.ID, Move{Column: 3})
	require.NoError(t, err)
	s := state.(State)
	assert.Equal(t, Red, s.Board[rows-1][3])

	state, err = Apply(state, bob.ID, Move{Column: 3})
	require.NoError(t, err)
	s = state.(State)
	assert.Equal(t, Yellow, s.Board[rows-2][3])
}

func TestApplyRejectsFullColumn(t *testing.T) {
	state, alice, bob := newTestState()

	players := []models.Player{alice, bob}
	var err error
	for i := 0; i < rows; i++ {
		state, err = Apply(state, players[i%2].ID, Move{Column: 0})
		require.NoError(t, err)
	}

	next := players[rows%2]
	_, err = Apply(state, next.ID, Move{Column: 0})
	assert.ErrorIs(t, err, models.ErrOutOfBounds)
}

func TestApplyRejectsColumnOutOfBounds(t *testing.T) {
	state, alice, _ := newTestState()

	_, err := Apply(state, alice.ID, Move{Column: 7})
	assert.ErrorIs(t, err, models.ErrOutOfBounds)
}

func TestApplyDetectsHorizontalWin(t *testing.T) {
	state, alice, bob := newTestState()

	moves := []struct {
		player models.Player
		col    int
	}{
		{alice, 0}, {bob, 0},
		{alice, 1}, {bob, 1},
		{alice, 2}, {bob, 2},
		{alice, 3},
	}

	var err error
	for _, m := range moves {
		state, err = Apply(state, m.player.ID, Move{Column: m.col})
		require.NoError(t, err)
	}

	s := state.(State)
	assert.Equal(t, models.StatusWon, s.Status())
	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, alice.ID, winner.ID)
}

func TestApplyRejectsWrongTurn(t *testing.T) {
	state, _, bob := newTestState()

	_, err := Apply(state, bob.ID, Move{Column: 0})
	assert.ErrorIs(t, err, models.ErrInvalidTurn)
}
