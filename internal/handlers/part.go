package handlers

import (
	"strings"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
	"metallircd/internal/registry"
)

// PartHandler implements PART, including its comma-separated channel
// list form.
type PartHandler struct{}

func (PartHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "PART" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.ErrNeedMoreParams, []string{"PART"}, "Not enough parameters")
		return Matched()
	}
	reason := ""
	if msg.HasTrailing {
		reason = msg.Trailing
	}
	for _, name := range strings.Split(msg.Args[0], ",") {
		partOne(ctx, actor, name, reason)
	}
	return Matched()
}

func partOne(ctx *Context, actor *model.User, name, reason string) {
	channel, ok := ctx.Channels.Get(name)
	if !ok || !channel.Has(actor) {
		Numeric(ctx, actor, numeric.ErrNotOnChannel, []string{name}, "You're not on that channel")
		return
	}

	partMsg := FromUser(actor, "PART", []string{channel.Name}, reason)
	registry.SendTo(channel, partMsg, nil)

	channel.Part(actor)
	ctx.Channels.DestroyIfEmpty(channel.Name)
}
