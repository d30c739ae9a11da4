package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
)

// QuitHandler fans out a QUIT to every user sharing at least one
// channel with the quitter, then hands off to the recycler via Zombify.
type QuitHandler struct{}

func (QuitHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "QUIT" {
		return NotMatched()
	}
	reason := "Client Quit"
	if msg.HasTrailing {
		reason = msg.Trailing
	} else if len(msg.Args) > 0 {
		reason = msg.Args[0]
	}
	FanOutQuit(ctx, actor, reason)
	return WithAction(ZombifyAction)
}

// FanOutQuit sends the QUIT notification to every user sharing a
// channel with actor, deduplicated so a peer in several shared channels
// only receives one copy. Shared by QuitHandler and the ircd package's
// transport-error teardown path (spec section 7: a socket failure also
// fans out a QUIT with reason "Connection closed.").
func FanOutQuit(ctx *Context, actor *model.User, reason string) {
	notified := make(map[[16]byte]bool)
	msg := FromUser(actor, "QUIT", nil, reason)
	for _, m := range snapshotMemberships(actor) {
		m.Channel.ForEachMember(func(peer *model.Membership) {
			if peer.User.ID == actor.ID {
				return
			}
			if notified[peer.User.ID] {
				return
			}
			notified[peer.User.ID] = true
			peer.User.Enqueue(msg)
		})
	}
}

func snapshotMemberships(u *model.User) []*model.Membership {
	out := make([]*model.Membership, 0, len(u.Channels))
	for _, m := range u.Channels {
		out = append(out, m)
	}
	return out
}
