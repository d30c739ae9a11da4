package handlers

import "metallircd/internal/registry"

// FinalFanOutHandler performs the actual delivery of a PRIVMSG/NOTICE
// that has survived the rest of the outbound-message chain. It must be
// the first handler registered on a freshly wired pipeline so that,
// after reverse-order dispatch, it is the last to run.
type FinalFanOutHandler struct{}

func (FinalFanOutHandler) HandleOutboundMessage(ctx *Context, msg OutboundMessage) (OutboundMessage, bool) {
	if len(msg.Target) > 0 && msg.Target[0] == '#' {
		if channel, ok := ctx.Channels.Get(msg.Target); ok {
			wire := FromUser(msg.Sender, msg.Verb, []string{channel.Name}, msg.Text)
			registry.SendTo(channel, wire, &msg.Sender.ID)
		}
		return msg, false
	}
	if recipient, ok := ctx.Users.ByNick(msg.Target); ok {
		wire := FromUser(msg.Sender, msg.Verb, []string{recipient.Nick()}, msg.Text)
		recipient.Enqueue(wire)
	}
	return msg, false
}
