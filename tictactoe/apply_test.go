package tictactoe

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

func TestApplyFirstMovePlacesXAndFlipsTurn(t *testing.T) {
	state, alice, _ := newTestState()

	next, err := Apply(state, alice.ID, Move{Row: 0, Col: 0})
	require.NoError(t, err)

	s := next.(State)
	assert.Equal(t, X, s.Board[0][0])
	assert.Equal(t, O, s.CurrentMark)
	assert.Equal(t, models.StatusInProgress, s.Status())
}

func TestApplyRejectsWrongTurn(t *testing.T) {
	state, _, bob := newTestState()

	_, err := Apply(state, bob.ID, Move{Row: 0, Col: 0})
	assert.ErrorIs(t, err, models.ErrInvalidTurn)
}

func TestApplyRejectsUnknownPlayer(t *testing.T) {
	state, _, _ := newTestState()

	_, err := Apply(state, models.NewPlayerID(), Move{Row: 0, Col: 0})
	var invalidPlayer *models.InvalidPlayerError
	assert.ErrorAs(t, err, &invalidPlayer)
}

func TestApplyRejectsOutOfBounds(t *testing.T) {
	state, alice, _ := newTestState()

	_, err := Apply(state, alice.ID, Move{Row: 3, Col: 0})
	assert.ErrorIs(t, err, models.ErrOutOfBounds)
}

func TestApplyRejectsOccupiedCell(t *testing.T) {
	state, alice, bob := newTestState()

	state, err := Apply(state, alice.ID, Move{Row: 0, Col: 0})
	require.NoError(t, err)

	_, err = Apply(state, bob.ID, Move{Row: 0, Col: 0})
	assert.ErrorIs(t, err, models.ErrCellOccupied)
}

func TestApplyDetectsWinningLine(t *testing.T) {
	state, alice, bob := newTestState()

	moves := []struct {
		player models.Player
		move   Move
	}{
		{alice, Move{Row: 0, Col: 0}},
		{bob, Move{Row: 1, Col: 0}},
		{alice, Move{Row: 0, Col: 1}},
		{bob, Move{Row: 1, Col: 1}},
		{alice, Move{Row: 0, Col: 2}},
	}

	var err error
	for _, m := range moves {
		state, err = Apply(state, m.player.ID, m.move)
		require.NoError(t, err)
	}

	s := state.(State)
	assert.Equal(t, models.StatusWon, s.Status())
	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, alice.ID, winner.ID)
}

func TestApplyRejectsMoveAfterGameOver(t *testing.T) {
	state, alice, bob := newTestState()

	moves := []struct {
		player models.Player
		move   Move
	}{
		{alice, Move{Row: 0, Col: 0}},
		{bob, Move{Row: 1, Col: 0}},
		{alice, Move{Row: 0, Col: 1}},
		{bob, Move{Row: 1, Col: 1}},
		{alice, Move{Row: 0, Col: 2}},
	}
	var err error
	for _, m := range moves {
		state, err = Apply(state, m.player.ID, m.move)
		require.NoError(t, err)
	}

	_, err = Apply(state, bob.ID, Move{Row: 2, Col: 2})
	assert.ErrorIs(t, err, models.ErrGameOver)
}

func TestApplyDetectsDraw(t *testing.T) {
	state, alice, bob := newTestState()
	// X O X
	// X O O
	// O X X
	moves := []struct {
		player models.Player
		move   Move
	}{
		{alice, Move{Row: 0, Col: 0}}, // X
		{bob, Move{Row: 0, Col: 1}},   // O
		{alice, Move{Row: 0, Col: 2}}, // X
		{bob, Move{Row: 1, Col: 1}},   // O
		{alice, Move{Row: 1, Col: 0}}, // X
		{bob, Move{Row: 1, Col: 2}},   // O
		{alice, Move{Row: 2, Col: 1}}, // X
		{bob, Move{Row: 2, Col: 0}},   // O
		{alice, Move{Row: 2, Col: 2}}, // X
	}

	var err error
	for _, m := range moves {
		state, err = Apply(state, m.player.ID, m.move)
		require.NoError(t, err)
	}

	s := state.(State)
	assert.Equal(t, models.StatusDraw, s.Status())
	assert.True(t, s.Draw)
}
