// Package module is the GameModule registry: a static mapping from a
// registered GameType tag to the bundle of functions that let the kernel
// (MatchWorker, Supervisor, HTTP adapter) manipulate that game's state
// without ever branching on game type themselves.
package module

import (
	"fmt"
	"sync"

	"github.com/lguibr/arbiter/models"
)

// Bundle plugs one game type into the kernel. Adding a game means writing
// and registering a Bundle; the supervisor and HTTP boundary are unchanged.
type Bundle struct {
	Type models.GameType

	// DecodeMove parses a client's raw JSON move body into this game's
	// MovePayload.
	DecodeMove func(raw []byte) (models.MovePayload, error)

	// NewInitialState builds the fresh state for a just-started match, in
	// the given player order. Pre-validated player count is the caller's
	// responsibility (the Supervisor checks against Type.MinPlayers/MaxPlayers).
	NewInitialState func(players []models.Player) models.GameState

	// ApplyMove is the pure rules transition: apply(player, move) -> state'|error.
	ApplyMove func(state models.GameState, playerID models.PlayerID, move models.MovePayload) (models.GameState, error)

	// EncodeState and DecodeState are this game's codec, adapted to the
	// GameState interface so the PersistenceWorker can treat every game type
	// uniformly.
	EncodeState func(state models.GameState) (string, error)
	DecodeState func(payload string) (models.GameState, error)

	// View converts internal state into the shape sent to clients.
	View func(state models.GameState) interface{}
}

// Registry is the compile-time table GameType -> Bundle.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]Bundle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]Bundle)}
}

// Register adds a bundle, keyed by its GameType's tag, and makes the tag
// resolvable through models.ParseGameType.
func (r *Registry) Register(b Bundle) {
	models.RegisterGameType(b.Type)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[b.Type.Tag] = b
}

// Lookup resolves a previously-registered tag.
func (r *Registry) Lookup(gameType string) (Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bundles[gameType]
	return b, ok
}

// MustLookup is Lookup but panics on an unregistered tag; only safe for
// tags already validated via models.ParseGameType.
func (r *Registry) MustLookup(gameType string) Bundle {
	b, ok := r.Lookup(gameType)
	if !ok {
		panic(fmt.Sprintf("module: %s is not registered", gameType))
	}
	return b
}
