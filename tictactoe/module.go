package tictactoe

import (
	"github.com/lguibr/arbiter/codec"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
)

// GameType is the registered tag for tic-tac-toe: exactly two players.
var GameType = models.GameType{Tag: "tictactoe", MinPlayers: 2, MaxPlayers: 2}

var jsonCodec = codec.NewJSON[State]("tictactoe")

// View is what clients receive from /tictactoe/{gameId}/move and /status.
type View struct {
	Board         [3][3]string `json:"board"`
	CurrentPlayer string       `json:"currentPlayer"`
	Winner        string       `json:"winner,omitempty"`
	Draw          bool         `json:"draw"`
}

func stateView(gs models.GameState) interface{} {
	s := gs.(State)
	var v View
	for r := range s.Board {
		for c := range s.Board[r] {
			v.Board[r][c] = string(s.Board[r][c])
		}
	}
	if s.Status() == models.StatusInProgress {
		v.CurrentPlayer = string(s.CurrentMark)
	}
	if s.WinnerMark != Empty {
		v.Winner = string(s.WinnerMark)
	}
	v.Draw = s.Draw
	return v
}

// Register installs the tic-tac-toe bundle into reg.
func Register(reg *module.Registry) {
	reg.Register(module.Bundle{
		Type:       GameType,
		DecodeMove: DecodeMove,
		NewInitialState: func(players []models.Player) models.GameState {
			return NewState(players)
		},
		ApplyMove: Apply,
		EncodeState: func(gs models.GameState) (string, error) {
			return jsonCodec.Encode(gs.(State))
		},
		DecodeState: func(payload string) (models.GameState, error) {
			s, err := jsonCodec.Decode(payload)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		View: stateView,
	})
}
