package models

// Messages exchanged with the Supervisor. Commands are sent via Ask; each
// has exactly one matching reply type (or ErrorResponse) — the HTTP adapter
// type-switches on whatever comes back and treats anything else as an
// "Unexpected response" 500, per the external interface contract.

// --- Commands ---

// CreateLobby asks the Supervisor to open a new lobby of gameType hosted by host.
type CreateLobby struct {
	GameType GameType
	Host     Player
}

// JoinLobby asks the Supervisor to add player to an existing lobby.
type JoinLobby struct {
	GameID GameID
	Player Player
}

// LeaveLobby asks the Supervisor to remove player from a lobby.
type LeaveLobby struct {
	GameID GameID
	Player Player
}

// StartGame asks the Supervisor to promote a ready lobby to a running match.
type StartGame struct {
	GameID   GameID
	CallerID PlayerID
}

// ListLobbies asks the Supervisor for every joinable lobby.
type ListLobbies struct{}

// GetLobbyInfo asks the Supervisor for one lobby's metadata.
type GetLobbyInfo struct {
	GameID GameID
}

// RunGameOperation asks the Supervisor to route op to the match's worker.
type RunGameOperation struct {
	GameID   GameID
	GameType string
	Op       GameOperation
}

// RestoreGames is not sent by any component and the Supervisor has no case
// for it. The Supervisor's restore is driven by the AllSnapshotsLoaded reply
// to the LoadAllSnapshots it sends itself on Started.
type RestoreGames struct{}

// GameCompleted is sent by a MatchWorker to the Supervisor when a match
// reaches a terminal status.
type GameCompleted struct {
	GameID GameID
	Status LobbyStatus
}

// --- Replies ---

// LobbyCreated replies to CreateLobby.
type LobbyCreated struct {
	GameID GameID
	Host   Player
}

// LobbyJoined replies to JoinLobby.
type LobbyJoined struct {
	GameID   GameID
	Lobby    LobbyMetadata
	Player   Player
}

// LobbyLeft replies to LeaveLobby.
type LobbyLeft struct {
	GameID GameID
	Reason string
}

// GameStarted replies to StartGame.
type GameStarted struct {
	GameID GameID
}

// LobbiesListed replies to ListLobbies.
type LobbiesListed struct {
	Lobbies []LobbyMetadata
}

// LobbyInfo replies to GetLobbyInfo.
type LobbyInfo struct {
	Lobby LobbyMetadata
}

// GameStatus wraps a game module's stateView, the generic reply the
// Supervisor's adapter produces for RunGameOperation on success.
type GameStatus struct {
	View interface{}
}

// ErrorResponse is the generic failure reply across every Supervisor command.
type ErrorResponse struct {
	Message string
}

func (e ErrorResponse) Error() string { return e.Message }
