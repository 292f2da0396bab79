package models

import "errors"

// Game-model errors: raised by a GameModel while applying a move. Reported to
// the caller verbatim and never crash a worker.
var (
	ErrInvalidTurn   = errors.New("not your turn")
	ErrCellOccupied  = errors.New("cell already occupied")
	ErrOutOfBounds   = errors.New("move is out of bounds")
	ErrGameOver      = errors.New("the game is already over")
)

// InvalidPlayerError reports a move or command from a player who has no role
// in the match.
type InvalidPlayerError struct {
	PlayerID string
}

func (e *InvalidPlayerError) Error() string {
	return "player " + e.PlayerID + " is not part of this game"
}

// Orchestration errors: raised by the Supervisor while mutating lobby or
// match state. The Supervisor sends their text as ErrorResponse.Message, and
// the HTTP adapter returns that text to the client as the error message,
// choosing the status code from it.
var (
	ErrLobbyNotFound      = errors.New("no such lobby")
	ErrLobbyFull          = errors.New("lobby is full")
	ErrAlreadyJoined      = errors.New("already in game")
	ErrNotJoinable        = errors.New("game already started or ended")
	ErrNotHost            = errors.New("only host can start, and game must be ready to start")
	ErrMatchNotFound      = errors.New("no game found with gameId")
	ErrUnsupportedGame    = errors.New("unsupported game type")
)

// Infrastructure errors.
var (
	ErrDecode  = errors.New("decode error")
	ErrStorage = errors.New("storage error")
	ErrAuth    = errors.New("authentication error")
)
