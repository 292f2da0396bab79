// Package tictactoe is the worked-example GameModule: the classic 3x3 game,
// two players, X moves first.
package tictactoe

import (
	"github.com/lguibr/arbiter/models"
)

// Mark is one cell's occupant.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// State is tic-tac-toe's GameState: a 3x3 board plus whose mark moves next.
type State struct {
	Players       [2]models.Player `json:"players"`
	Board         [3][3]Mark       `json:"board"`
	CurrentMark   Mark             `json:"currentMark"`
	WinnerMark    Mark             `json:"winnerMark,omitempty"`
	Draw          bool             `json:"draw"`
}

// markOf returns the mark assigned to a player by seat order (seat 0 is X).
func (s State) markOf(playerID models.PlayerID) (Mark, bool) {
	for i, p := range s.Players {
		if p.ID == playerID {
			if i == 0 {
				return X, true
			}
			return O, true
		}
	}
	return Empty, false
}

func (s State) playerForMark(mark Mark) models.Player {
	if mark == X {
		return s.Players[0]
	}
	return s.Players[1]
}

func (s State) OrderedPlayers() []models.Player {
	return []models.Player{s.Players[0], s.Players[1]}
}

func (s State) CurrentPlayer() models.PlayerID {
	return s.playerForMark(s.CurrentMark).ID
}

func (s State) Status() models.MatchStatus {
	switch {
	case s.WinnerMark != Empty:
		return models.StatusWon
	case s.Draw:
		return models.StatusDraw
	default:
		return models.StatusInProgress
	}
}

func (s State) Winner() (models.Player, bool) {
	if s.WinnerMark == Empty {
		return models.Player{}, false
	}
	return s.playerForMark(s.WinnerMark), true
}

// NewState builds the empty starting position for exactly two players.
func NewState(players []models.Player) models.GameState {
	var s State
	s.Players[0] = players[0]
	s.Players[1] = players[1]
	s.CurrentMark = X
	return s
}

var _ models.GameState = State{}
