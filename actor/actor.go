package actor

// Actor processes messages delivered one at a time from its mailbox.
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a new Actor instance. It is called once each time an
// actor is spawned; the engine never restarts an actor.
type Producer func() Actor

// Props configures how an actor is constructed.
type Props struct {
	producer Producer
}

// NewProps builds Props around an actor Producer.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actor: producer cannot be nil")
	}
	return &Props{producer: producer}
}

// Produce creates a new actor instance.
func (p *Props) Produce() Actor {
	return p.producer()
}
