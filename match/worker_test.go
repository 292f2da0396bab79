package match

import (
	"sync"
	"testing"
	"time"

	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
	"github.com/lguibr/arbiter/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicTacToeRegistry() *module.Registry {
	reg := module.NewRegistry()
	tictactoe.Register(reg)
	return reg
}

// capturingActor records every message sent to it, for assertions against
// fire-and-forget traffic (SaveSnapshot, GameCompleted) a worker emits.
type capturingActor struct {
	mu       sync.Mutex
	received []interface{}
}

func (a *capturingActor) Receive(ctx actor.Context) {
	if _, ok := ctx.Message().(actor.Started); ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = append(a.received, ctx.Message())
}

func (a *capturingActor) snapshot() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]interface{}, len(a.received))
	copy(out, a.received)
	return out
}

func setupMatch(t *testing.T) (*actor.Engine, *actor.PID, *capturingActor, *capturingActor, models.Player, models.Player) {
	t.Helper()

	engine := actor.NewEngine()
	persistence := &capturingActor{}
	supervisor := &capturingActor{}
	persistencePID := engine.Spawn(actor.NewProps(func() actor.Actor { return persistence }))
	supervisorPID := engine.Spawn(actor.NewProps(func() actor.Actor { return supervisor }))

	alice := models.Player{ID: models.NewPlayerID(), Name: "alice"}
	bob := models.Player{ID: models.NewPlayerID(), Name: "bob"}

	reg := newTicTacToeRegistry()
	bundle, _ := reg.Lookup("tictactoe")

	state, err := NewInitialState(bundle, []models.Player{alice, bob})
	require.NoError(t, err)

	gameID := models.NewGameID()
	matchPID := engine.Spawn(actor.NewProps(NewProducer(gameID, bundle, state, persistencePID, supervisorPID)))

	t.Cleanup(func() { engine.Shutdown(time.Second) })

	return engine, matchPID, persistence, supervisor, alice, bob
}

func TestMakeMoveRepliesWithUpdatedView(t *testing.T) {
	engine, matchPID, persistence, _, alice, _ := setupMatch(t)

	reply, err := engine.Ask(matchPID, models.MakeMove{PlayerID: alice.ID, Payload: tictactoe.Move{Row: 0, Col: 0}}, time.Second)
	require.NoError(t, err)

	view, ok := reply.(tictactoe.View)
	require.True(t, ok)
	assert.Equal(t, "X", view.Board[0][0])
	assert.Equal(t, "O", view.CurrentPlayer)

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, persistence.snapshot(), 1)
}

func TestMakeMoveRejectsWrongTurn(t *testing.T) {
	engine, matchPID, _, _, _, bob := setupMatch(t)

	reply, err := engine.Ask(matchPID, models.MakeMove{PlayerID: bob.ID, Payload: tictactoe.Move{Row: 0, Col: 0}}, time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, reply.(error), models.ErrInvalidTurn)
}

func TestMakeMoveNotifiesSupervisorOnCompletion(t *testing.T) {
	engine, matchPID, _, supervisor, alice, bob := setupMatch(t)

	moves := []struct {
		player models.Player
		move   tictactoe.Move
	}{
		{alice, tictactoe.Move{Row: 0, Col: 0}},
		{bob, tictactoe.Move{Row: 1, Col: 0}},
		{alice, tictactoe.Move{Row: 0, Col: 1}},
		{bob, tictactoe.Move{Row: 1, Col: 1}},
		{alice, tictactoe.Move{Row: 0, Col: 2}},
	}

	for _, m := range moves {
		_, err := engine.Ask(matchPID, models.MakeMove{PlayerID: m.player.ID, Payload: m.move}, time.Second)
		require.NoError(t, err)
	}

	time.Sleep(20 * time.Millisecond)
	found := false
	for _, msg := range supervisor.snapshot() {
		if gc, ok := msg.(models.GameCompleted); ok {
			found = true
			assert.Equal(t, models.Completed, gc.Status)
		}
	}
	assert.True(t, found, "expected a GameCompleted notification")
}

func TestGetStateNeverMutates(t *testing.T) {
	engine, matchPID, _, _, _, _ := setupMatch(t)

	reply, err := engine.Ask(matchPID, models.GetState{}, time.Second)
	require.NoError(t, err)

	view, ok := reply.(tictactoe.View)
	require.True(t, ok)
	assert.Equal(t, "X", view.CurrentPlayer)
	assert.Empty(t, view.Board[0][0])
}
