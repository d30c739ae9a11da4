package handlers

import (
	"metallircd/internal/ident"
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// NickHandler implements NICK for already-registered connections.
// Registration-time NICK/USER negotiation is handled directly by the
// connection state machine (internal/ircd), not through this pipeline,
// since a not-yet-registered connection has no user record to dispatch
// against yet.
type NickHandler struct{}

func (NickHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "NICK" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.ErrNoNicknameGiven, nil, "No nickname given")
		return Matched()
	}
	newNick := msg.Args[0]
	if !ident.ValidNick(newNick) {
		Numeric(ctx, actor, numeric.ErrErroneusNickname, []string{newNick}, "Erroneous nickname")
		return Matched()
	}
	if ident.Fold(newNick) == ident.Fold(actor.Nick()) {
		// Same folded nick: an exact repeat is a no-op, while a pure
		// case-change is still forwarded to the recycler so the displayed
		// nick is updated.
		if newNick != actor.Nick() {
			return WithAction(ChangeNickAction(newNick))
		}
		return Matched()
	}
	return WithAction(ChangeNickAction(newNick))
}
