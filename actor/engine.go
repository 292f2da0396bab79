package actor

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Ask when no Reply arrives before the deadline.
var ErrTimeout = errors.New("actor: ask timed out waiting for reply")

// Engine owns the set of live actors and routes messages between them.
type Engine struct {
	pidCounter uint64
	reqCounter uint64

	mu     sync.RWMutex
	actors map[string]*process

	pendingMu sync.Mutex
	pending   map[string]chan interface{}

	stopping atomic.Bool
}

// NewEngine creates an empty, ready-to-use actor engine.
func NewEngine() *Engine {
	return &Engine{
		actors:  make(map[string]*process),
		pending: make(map[string]chan interface{}),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

func (e *Engine) nextRequestID() string {
	id := atomic.AddUint64(&e.reqCounter, 1)
	return fmt.Sprintf("req-%d", id)
}

// Spawn starts a new actor from Props and returns its PID. It returns nil if
// the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		log.Println("actor: engine is stopping, refusing to spawn")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()

	e.Send(pid, Started{}, nil)

	return pid
}

// Send delivers a fire-and-forget message to pid. It is a no-op if pid does
// not name a live actor.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	e.deliver(pid, message, sender, "")
}

func (e *Engine) deliver(pid *PID, message interface{}, sender *PID, requestID string) bool {
	if pid == nil {
		return false
	}

	_, isStopping := message.(Stopping)
	isSystemMsg := isStopping
	if _, ok := message.(Started); ok {
		isSystemMsg = true
	}

	if e.stopping.Load() && !isSystemMsg {
		return false
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if !ok {
		return false
	}

	proc.sendMessage(&messageEnvelope{Sender: sender, Message: message, RequestID: requestID})
	return true
}

// Ask sends message to pid and blocks until the actor calls ctx.Reply, the
// timeout elapses (returning ErrTimeout), or pid does not exist.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, errors.New("actor: cannot ask a nil pid")
	}

	requestID := e.nextRequestID()
	replyCh := make(chan interface{}, 1)

	e.pendingMu.Lock()
	e.pending[requestID] = replyCh
	e.pendingMu.Unlock()

	defer func() {
		e.pendingMu.Lock()
		delete(e.pending, requestID)
		e.pendingMu.Unlock()
	}()

	if !e.deliver(pid, message, nil, requestID) {
		return nil, fmt.Errorf("actor: %s not found", pid.ID)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		return reply, nil
	case <-timer.C:
		return nil, ErrTimeout
	}
}

// fulfill delivers a Reply to whichever Ask call is waiting on requestID, if any.
func (e *Engine) fulfill(requestID string, msg interface{}) {
	e.pendingMu.Lock()
	ch, ok := e.pending[requestID]
	if ok {
		delete(e.pending, requestID)
	}
	e.pendingMu.Unlock()

	if !ok {
		return
	}

	select {
	case ch <- msg:
	default:
	}
}

// Stop asks the actor at pid to shut down. The process's own goroutine ends
// its loop once it has handled the Stopping message; Stop does not block
// for that to happen (Shutdown does, with a timeout).
func (e *Engine) Stop(pid *PID) {
	e.Send(pid, Stopping{}, nil)
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every live actor and waits up to timeout for them to exit.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}

	e.mu.RLock()
	remaining := len(e.actors)
	e.mu.RUnlock()
	if remaining > 0 {
		log.Printf("actor: shutdown timeout with %d actor(s) still running", remaining)
	}
}
