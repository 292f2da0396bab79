package tictactoe

import (
	"encoding/json"

	"github.com/lguibr/arbiter/models"
)

// Move is tic-tac-toe's MovePayload: a zero-indexed board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (Move) isMovePayload() {}

var _ models.MovePayload = Move{}

// DecodeMove parses a client's raw JSON move body.
func DecodeMove(raw []byte) (models.MovePayload, error) {
	var m Move
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
