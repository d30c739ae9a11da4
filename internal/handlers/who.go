package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/modeset"
	"metallircd/internal/numeric"
)

// WhoHandler implements WHO #channel (the teacher's own supported
// subset). An invisible member is only shown to requesters who share
// the channel with them.
type WhoHandler struct{}

func (WhoHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "WHO" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.RplEndOfWho, []string{"*"}, "End of /WHO list")
		return Matched()
	}
	name := msg.Args[0]
	channel, ok := ctx.Channels.Get(name)
	if !ok {
		Numeric(ctx, actor, numeric.RplEndOfWho, []string{name}, "End of /WHO list")
		return Matched()
	}
	if channel.Modes().Contains('s') && !channel.Has(actor) {
		Numeric(ctx, actor, numeric.RplEndOfWho, []string{name}, "End of /WHO list")
		return Matched()
	}

	requesterIsMember := channel.Has(actor)
	channel.ForEachMember(func(m *model.Membership) {
		u := m.User
		if u.IsInvisible() && !requesterIsMember {
			return
		}
		flags := "H"
		if u.IsOperator() {
			flags += "*"
		}
		if prefix := modeset.Best(m.Modes()); prefix != 0 {
			flags += string(prefix)
		}
		Numeric(ctx, actor, numeric.RplWhoReply, []string{
			channel.Name, u.Username(), u.Hostname(), ctx.ServerName, u.Nick(), flags,
		}, "0 "+u.Realname())
	})
	Numeric(ctx, actor, numeric.RplEndOfWho, []string{name}, "End of /WHO list")
	return Matched()
}
