// Package connectfour is a second GameModule, deliberately a different board
// topology (columns, gravity, four-in-a-row) than tic-tac-toe, proving the
// module registry needs no supervisor or HTTP change to add a game.
package connectfour

import "github.com/lguibr/arbiter/models"

const (
	cols = 7
	rows = 6
)

// Disc is one cell's occupant.
type Disc string

const (
	Empty Disc = ""
	Red   Disc = "Red"
	Yellow Disc = "Yellow"
)

// State is Connect Four's GameState: a 7x6 grid, discs dropped by column.
type State struct {
	Players     [2]models.Player    `json:"players"`
	Board       [rows][cols]Disc    `json:"board"`
	CurrentDisc Disc                `json:"currentDisc"`
	WinnerDisc  Disc                `json:"winnerDisc,omitempty"`
	Draw        bool                `json:"draw"`
}

func (s State) discOf(playerID models.PlayerID) (Disc, bool) {
	for i, p := range s.Players {
		if p.ID == playerID {
			if i == 0 {
				return Red, true
			}
			return Yellow, true
		}
	}
	return Empty, false
}

func (s State) playerForDisc(d Disc) models.Player {
	if d == Red {
		return s.Players[0]
	}
	return s.Players[1]
}

func (s State) OrderedPlayers() []models.Player {
	return []models.Player{s.Players[0], s.Players[1]}
}

func (s State) CurrentPlayer() models.PlayerID {
	return s.playerForDisc(s.CurrentDisc).ID
}

func (s State) Status() models.MatchStatus {
	switch {
	case s.WinnerDisc != Empty:
		return models.StatusWon
	case s.Draw:
		return models.StatusDraw
	default:
		return models.StatusInProgress
	}
}

func (s State) Winner() (models.Player, bool) {
	if s.WinnerDisc == Empty {
		return models.Player{}, false
	}
	return s.playerForDisc(s.WinnerDisc), true
}

// NewState builds the empty starting position for exactly two players.
func NewState(players []models.Player) models.GameState {
	var s State
	s.Players[0] = players[0]
	s.Players[1] = players[1]
	s.CurrentDisc = Red
	return s
}

var _ models.GameState = State{}
