package actor

// Respond delivers reply to whoever is awaiting the message ctx is currently
// handling: via Reply if it arrived through Ask, or via a plain Send back to
// Sender for a fire-and-forget message that still expects an async reply.
// It is a no-op if neither a request id nor a sender is present.
func Respond(ctx Context, reply interface{}) {
	if ctx.RequestID() != "" {
		ctx.Reply(reply)
		return
	}
	if sender := ctx.Sender(); sender != nil {
		ctx.Engine().Send(sender, reply, ctx.Self())
	}
}
