package actor

import (
	"log"
	"runtime/debug"
)

const defaultMailboxSize = 1024

// phase tracks where a process is in its life: accepting work, or wound
// down. Only the process's own goroutine ever reads or writes it.
type phase int

const (
	phaseRunning phase = iota
	phaseDone
)

// process is the running instance of an actor: its state plus the goroutine
// and channel driving its mailbox.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	phase   phase
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
	}
}

func (p *process) sendMessage(envelope *messageEnvelope) {
	select {
	case p.mailbox <- envelope:
	default:
		log.Printf("actor: %s mailbox full, dropping message type %T", p.pid.ID, envelope.Message)
	}
}

// run owns this actor's entire lifetime: build it, feed it mail until a
// Stopping message lands, then tear it down. It is the only goroutine that
// ever touches p.actor or p.phase.
func (p *process) run() {
	if p.construct() {
		for p.phase == phaseRunning {
			p.dispatch(<-p.mailbox)
		}
	}
	p.teardown()
}

// construct builds the actor from its Props, recovering a panicking
// Producer the same way dispatch recovers a panicking Receive, so a bad
// factory still leaves the engine's bookkeeping consistent.
func (p *process) construct() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("actor: %s panicked constructing: %v\n%s", p.pid.ID, r, string(debug.Stack()))
			ok = false
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic("actor: producer returned nil actor for " + p.pid.ID)
	}
	return true
}

// dispatch delivers one envelope to the actor. A panic here only kills this
// actor, not its caller or the engine. Stopping is the one message the
// process itself must notice, since it is what ends the loop in run —
// every other message is opaque user traffic handed straight to Receive.
func (p *process) dispatch(envelope *messageEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("actor: %s panicked: %v\n%s", p.pid.ID, r, string(debug.Stack()))
			p.phase = phaseDone
		}
	}()

	p.invokeReceive(envelope.Message, envelope.Sender, envelope.RequestID)

	if _, stopping := envelope.Message.(Stopping); stopping {
		p.phase = phaseDone
	}
}

// teardown runs exactly once, after the loop in run exits for any reason:
// delivers the terminal Stopped message and unregisters the process. A panic
// while handling Stopped is recovered, and the process is unregistered
// either way.
func (p *process) teardown() {
	defer p.engine.remove(p.pid)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("actor: %s panicked stopping: %v\n%s", p.pid.ID, r, string(debug.Stack()))
		}
	}()

	p.phase = phaseDone
	if p.actor != nil {
		p.invokeReceive(Stopped{}, nil, "")
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
	}
	p.actor.Receive(ctx)
}
