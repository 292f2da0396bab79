package connectfour

import (
	"encoding/json"

	"github.com/lguibr/arbiter/models"
)

// Move is Connect Four's MovePayload: the column to drop a disc into.
type Move struct {
	Column int `json:"column"`
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
