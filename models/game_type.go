package models

import "strings"

// GameType is the registered tag identifying a family of rules and its
// module. The zero value is not a valid game type.
type GameType struct {
	Tag         string
	MinPlayers  int
	MaxPlayers  int
}

func (g GameType) String() string { return g.Tag }

// known holds every registered game type, keyed by its lower-cased tag.
// Populated by module registration (see package module), not here — this
// file only defines the type and the case-insensitive parser contract.
var known = map[string]GameType{}

// RegisterGameType makes a GameType resolvable by ParseGameType. Called once
// per module at startup; it is not safe to call after the server starts
// accepting requests.
func RegisterGameType(gt GameType) {
	known[strings.ToLower(gt.Tag)] = gt
}

// ParseGameType resolves a short name ("tictactoe") case-insensitively.
func ParseGameType(name string) (GameType, bool) {
	gt, ok := known[strings.ToLower(name)]
	return gt, ok
}
