package handlers

import "metallircd/internal/numeric"

// AwayNoticeHandler sends RPL_AWAY back to the sender of a direct
// PRIVMSG whose recipient has an away message set, before the message
// is delivered. NOTICEs pass through without an away reply. It never consumes the message: the away
// reply is a side effect, not a veto.
type AwayNoticeHandler struct{}

func (AwayNoticeHandler) HandleOutboundMessage(ctx *Context, msg OutboundMessage) (OutboundMessage, bool) {
	if len(msg.Target) == 0 || msg.Target[0] == '#' {
		return msg, true
	}
	if msg.Verb != "PRIVMSG" {
		return msg, true
	}
	recipient, ok := ctx.Users.ByNick(msg.Target)
	if !ok {
		return msg, true
	}
	if awayMsg, away := recipient.AwayMessage(); away {
		Numeric(ctx, msg.Sender, numeric.RplAway, []string{recipient.Nick()}, awayMsg)
	}
	return msg, true
}
