package actor

// Context gives an Actor access to the engine and the message it is
// currently handling.
type Context interface {
	// Engine returns the Engine managing this actor.
	Engine() *Engine
	// Self returns this actor's own PID.
	Self() *PID
	// Sender returns the PID of the actor that sent the current message, if any.
	Sender() *PID
	// Message returns the message being processed.
	Message() interface{}
	// RequestID returns the correlation id of the current message when it
	// was sent via Ask, or "" for an ordinary Send.
	RequestID() string
	// Reply fulfills the pending Ask request for the current message. It is
	// a no-op if the current message was not sent via Ask, or if the asker
	// has already timed out.
	Reply(msg interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
func (c *context) RequestID() string    { return c.requestID }

func (c *context) Reply(msg interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.fulfill(c.requestID, msg)
}
