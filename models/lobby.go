package models

// LobbyStatus is the lobby's position in its finite state machine:
//
//	WaitingForPlayers ⇄ ReadyToStart → InProgress → Completed
//
// WaitingForPlayers and ReadyToStart reach Cancelled via host-leave; an
// InProgress lobby is never cancelled. Completed and Cancelled are terminal.
type LobbyStatus string

const (
	WaitingForPlayers LobbyStatus = "WaitingForPlayers"
	ReadyToStart      LobbyStatus = "ReadyToStart"
	InProgress        LobbyStatus = "InProgress"
	Completed         LobbyStatus = "Completed"
	Cancelled         LobbyStatus = "Cancelled"
)

// Joinable reports whether a lobby in this status still accepts JoinLobby.
func (s LobbyStatus) Joinable() bool {
	return s == WaitingForPlayers || s == ReadyToStart
}

// Terminal reports whether this status never transitions further.
func (s LobbyStatus) Terminal() bool {
	return s == Completed || s == Cancelled
}

// LobbyMetadata is the pre-game room tracking membership and start-readiness
// for one future match. The Supervisor exclusively owns and mutates it.
type LobbyMetadata struct {
	GameID  GameID              `json:"gameId"`
	GameType string             `json:"gameType"`
	Players map[PlayerID]Player `json:"players"`
	HostID  PlayerID            `json:"hostId"`
	Status  LobbyStatus         `json:"status"`

	// order records join order (host first) so StartGame can hand the
	// GameModule a deterministic seat assignment. Not part of the spec's
	// external data model; omitted from JSON.
	order []PlayerID `json:"-"`
}

// NewLobby creates a WaitingForPlayers lobby with host as its sole member.
func NewLobby(gameID GameID, gameType string, host Player) *LobbyMetadata {
	return &LobbyMetadata{
		GameID:   gameID,
		GameType: gameType,
		Players:  map[PlayerID]Player{host.ID: host},
		HostID:   host.ID,
		Status:   WaitingForPlayers,
		order:    []PlayerID{host.ID},
	}
}

// recomputeStatus sets Status to ReadyToStart or WaitingForPlayers based on
// current membership, leaving InProgress/Completed/Cancelled untouched.
func (l *LobbyMetadata) recomputeStatus(minPlayers int) {
	if l.Status != WaitingForPlayers && l.Status != ReadyToStart {
		return
	}
	if len(l.Players) >= minPlayers {
		l.Status = ReadyToStart
	} else {
		l.Status = WaitingForPlayers
	}
}

// Join adds player to the lobby, recomputing readiness against gt. Callers
// are expected to have already rejected not-joinable/full/duplicate cases.
func (l *LobbyMetadata) Join(player Player, gt GameType) {
	l.Players[player.ID] = player
	l.order = append(l.order, player.ID)
	l.recomputeStatus(gt.MinPlayers)
}

// Leave removes player from the lobby. If the leaver was host and the lobby
// hasn't started or finished yet, it is cancelled outright; otherwise
// readiness is recomputed against gt. A terminal lobby, or one whose match
// is already InProgress, never has its Status overwritten by a leave — a
// terminal status never transitions out (spec §8), and once a match is
// running there is no "lobby" state left for a leave to cancel.
func (l *LobbyMetadata) Leave(playerID PlayerID, gt GameType) (wasHost bool) {
	delete(l.Players, playerID)
	for i, id := range l.order {
		if id == playerID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	wasHost = playerID == l.HostID
	if wasHost {
		if !l.Status.Terminal() && l.Status != InProgress {
			l.Status = Cancelled
		}
		return true
	}
	l.recomputeStatus(gt.MinPlayers)
	return false
}

// OrderedPlayers returns the lobby's members in join order (host first),
// the seat order StartGame hands to the GameModule factory.
func (l *LobbyMetadata) OrderedPlayers() []Player {
	out := make([]Player, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.Players[id])
	}
	return out
}

// Snapshot returns a deep-enough copy safe to hand to an HTTP response
// goroutine without racing the Supervisor's own mutations.
func (l *LobbyMetadata) Snapshot() LobbyMetadata {
	players := make(map[PlayerID]Player, len(l.Players))
	for id, p := range l.Players {
		players[id] = p
	}
	cp := *l
	cp.Players = players
	cp.order = append([]PlayerID(nil), l.order...)
	return cp
}
