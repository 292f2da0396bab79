package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoActor struct {
	received []interface{}
}

func (a *echoActor) Receive(ctx Context) {
	a.received = append(a.received, ctx.Message())

	switch msg := ctx.Message().(type) {
	case string:
		ctx.Reply("echo:" + msg)
	case Started, Stopping, Stopped:
		_ = msg
	}
}

func TestEngineSendDeliversMessage(t *testing.T) {
	engine := NewEngine()
	a := &echoActor{}
	pid := engine.Spawn(NewProps(func() Actor { return a }))
	require.NotNil(t, pid)

	engine.Send(pid, "hello", nil)
	// The mailbox is FIFO, so once this Ask is answered "hello" has already
	// been handled.
	_, err := engine.Ask(pid, "ping", time.Second)
	require.NoError(t, err)
	assert.Contains(t, a.received, "hello")

	engine.Shutdown(time.Second)
}

func TestEngineAskReceivesReply(t *testing.T) {
	engine := NewEngine()
	pid := engine.Spawn(NewProps(func() Actor { return &echoActor{} }))
	require.NotNil(t, pid)

	reply, err := engine.Ask(pid, "ping", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", reply)

	engine.Shutdown(time.Second)
}

type silentActor struct{}

func (a *silentActor) Receive(ctx Context) {}

func TestEngineAskTimesOutWhenNoReply(t *testing.T) {
	engine := NewEngine()
	pid := engine.Spawn(NewProps(func() Actor { return &silentActor{} }))
	require.NotNil(t, pid)

	_, err := engine.Ask(pid, "ping", 30*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)

	engine.Shutdown(time.Second)
}

func TestEngineAskUnknownPID(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Ask(&PID{ID: "does-not-exist"}, "ping", 30*time.Millisecond)
	assert.Error(t, err)
}

func TestEngineStopRemovesActor(t *testing.T) {
	engine := NewEngine()
	pid := engine.Spawn(NewProps(func() Actor { return &silentActor{} }))
	require.NotNil(t, pid)

	engine.Stop(pid)
	time.Sleep(20 * time.Millisecond)

	_, err := engine.Ask(pid, "ping", 30*time.Millisecond)
	assert.Error(t, err)
}
