// Package match implements the MatchWorker: the actor that owns exactly one
// live match, validates and sequences its moves, and tells persistence and
// the supervisor what happened — without ever knowing which game it is
// running, beyond the module.Bundle it was built with.
package match

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
)

// Worker is the MatchWorker actor. It owns state exclusively; nothing else
// mutates it after construction.
type Worker struct {
	gameID         models.GameID
	bundle         module.Bundle
	state          models.GameState
	persistencePID *actor.PID
	supervisorPID  *actor.PID
	self           *actor.PID
}

// NewInitialState pre-validates the player count and builds the fresh state
// for a just-started match. This is the "create" half of the GameModule
// factory contract (§4.4): the Supervisor calls it synchronously before
// spawning a worker, so a bad player count never reaches an actor at all.
func NewInitialState(bundle module.Bundle, players []models.Player) (models.GameState, error) {
	n := len(players)
	if n < bundle.Type.MinPlayers || n > bundle.Type.MaxPlayers {
		return nil, fmt.Errorf("%s requires between %d and %d players, got %d",
			bundle.Type.Tag, bundle.Type.MinPlayers, bundle.Type.MaxPlayers, n)
	}
	return bundle.NewInitialState(players), nil
}

// NewProducer builds a Producer for a MatchWorker already holding its
// current state — used both for a freshly created match (initialState from
// NewInitialState) and for one restored from a snapshot (state decoded by
// the caller via bundle.DecodeState).
func NewProducer(gameID models.GameID, bundle module.Bundle, state models.GameState, persistencePID, supervisorPID *actor.PID) actor.Producer {
	return func() actor.Actor {
		return &Worker{
			gameID:         gameID,
			bundle:         bundle,
			state:          state,
			persistencePID: persistencePID,
			supervisorPID:  supervisorPID,
		}
	}
}

func (w *Worker) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("match: %s (%s) panicked: %v\n%s", w.self, w.gameID, r, string(debug.Stack()))
		}
	}()

	if w.self == nil {
		w.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:
		// state already set by the producer; nothing to do.

	case models.MakeMove:
		w.handleMakeMove(ctx, msg)

	case models.GetState:
		actor.Respond(ctx, w.bundle.View(w.state))

	case models.SnapshotSaved:
		if msg.Err != nil {
			log.Printf("match: %s save failed: %v", w.gameID, msg.Err)
		}

	case models.SnapshotLoaded:
		// observation-only; the worker's state already reflects reality.

	case actor.Stopping, actor.Stopped:

	default:
		log.Printf("match: %s received unknown message type %T", w.gameID, msg)
	}
}

func (w *Worker) handleMakeMove(ctx actor.Context, msg models.MakeMove) {
	if w.state.Status() != models.StatusInProgress {
		actor.Respond(ctx, models.ErrGameOver)
		return
	}

	next, err := w.bundle.ApplyMove(w.state, msg.PlayerID, msg.Payload)
	if err != nil {
		actor.Respond(ctx, err)
		return
	}

	payload, encErr := w.bundle.EncodeState(next)
	if encErr != nil {
		log.Printf("match: %s failed to encode state for save: %v", w.gameID, encErr)
	} else {
		ctx.Engine().Send(w.persistencePID, models.SaveSnapshot{
			GameID:   w.gameID,
			GameType: w.bundle.Type.Tag,
			Payload:  payload,
		}, w.self)
	}

	actor.Respond(ctx, w.bundle.View(next))

	if status := next.Status(); status == models.StatusWon || status == models.StatusDraw {
		ctx.Engine().Send(w.supervisorPID, models.GameCompleted{
			GameID: w.gameID,
			Status: models.Completed,
		}, w.self)
	}

	w.state = next
}
