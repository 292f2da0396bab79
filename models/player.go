package models

import "github.com/google/uuid"

// PlayerID is an opaque 128-bit player identity; canonical string form is a UUID.
type PlayerID = uuid.UUID

// GameID is an opaque 128-bit match/lobby identity; canonical string form is a UUID.
type GameID = uuid.UUID

// NewPlayerID mints a fresh random player identity.
func NewPlayerID() PlayerID { return uuid.New() }

// NewGameID mints a fresh random game identity.
func NewGameID() GameID { return uuid.New() }

// ParseID parses the canonical UUID string form of a PlayerID/GameID.
func ParseID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Player is a stable identity bound to a display name. Equality is by ID.
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Equal reports whether two players share the same ID.
func (p Player) Equal(other Player) bool {
	return p.ID == other.ID
}
