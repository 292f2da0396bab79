package models

// MatchStatus is the tri-state terminal condition every GameState exposes,
// regardless of game type.
type MatchStatus string

const (
	StatusInProgress MatchStatus = "InProgress"
	StatusWon        MatchStatus = "Won"
	StatusDraw       MatchStatus = "Draw"
)

// GameState is the contract every per-game-type state must satisfy so the
// MatchWorker can enforce turn order and terminal status without knowing the
// concrete rules. Game modules embed this behavior alongside their own
// fields (board layout, hands, whatever the rules need).
type GameState interface {
	// OrderedPlayers returns match participants in turn order.
	OrderedPlayers() []Player
	// CurrentPlayer returns whose turn it is. Meaningless once Status() != InProgress.
	CurrentPlayer() PlayerID
	// Status reports InProgress, Won, or Draw.
	Status() MatchStatus
	// Winner returns the winning player when Status() == Won.
	Winner() (Player, bool)
}

// MovePayload is the tagged-union member a GameModule's moveDecoder produces;
// its shape is entirely game-specific. The kernel only ever carries it
// opaquely between the HTTP boundary and the owning MatchWorker.
type MovePayload interface {
	isMovePayload()
}

// GameOperation is the game-agnostic request a MatchWorker understands.
type GameOperation interface {
	isGameOperation()
}

// MakeMove asks a MatchWorker to apply a move on behalf of a player.
type MakeMove struct {
	PlayerID PlayerID
	Payload  MovePayload
}

func (MakeMove) isGameOperation() {}

// GetState asks a MatchWorker for its current view, with no side effects.
type GetState struct{}

func (GetState) isGameOperation() {}
