package handlers

import (
	"strings"

	"metallircd/internal/ident"
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/modeset"
	"metallircd/internal/numeric"
	"metallircd/internal/registry"
)

// JoinHandler implements JOIN with full RFC 2812 comma-separated
// multi-channel support (the teacher intentionally only accepted one
// channel per JOIN; spec section 4.6 requires the full list form, so
// this handler adds it back).
type JoinHandler struct{}

func (JoinHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "JOIN" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.ErrNeedMoreParams, []string{"JOIN"}, "Not enough parameters")
		return Matched()
	}
	names := strings.Split(msg.Args[0], ",")
	for _, name := range names {
		joinOne(ctx, actor, name)
	}
	return Matched()
}

func joinOne(ctx *Context, actor *model.User, name string) {
	if !ident.ValidChannel(name) {
		Numeric(ctx, actor, numeric.ErrNoSuchChannel, []string{name}, "No such channel")
		return
	}

	channel := ctx.Channels.GetOrCreate(name)

	if channel.Has(actor) {
		return // idempotent repeat join
	}

	channel.Join(actor)

	joinMsg := FromUser(actor, "JOIN", nil, "")
	joinMsg.Args = []string{channel.Name}
	joinMsg.HasTrailing = false
	registry.SendTo(channel, joinMsg, nil)

	if topic := channel.Topic(); topic != "" {
		Numeric(ctx, actor, numeric.RplTopic, []string{channel.Name}, topic)
	} else {
		Numeric(ctx, actor, numeric.RplNoTopic, []string{channel.Name}, "No topic is set")
	}

	sendNames(ctx, actor, channel)
}

// sendNames emits RPL_NAMREPLY (batched to respect the 510-byte wire
// limit) followed by RPL_ENDOFNAMES.
func sendNames(ctx *Context, actor *model.User, channel *model.Channel) {
	const budget = 400 // conservative room under 510 for prefix/numeric/channel name
	var names []string
	channel.ForEachMember(func(m *model.Membership) {
		prefix := modeset.Best(m.Modes())
		n := m.User.Nick()
		if prefix != 0 {
			n = string(prefix) + n
		}
		names = append(names, n)
	})

	var batch []string
	flush := func() {
		if len(batch) == 0 {
			return
		}
		Numeric(ctx, actor, numeric.RplNameReply, []string{"=", channel.Name}, strings.Join(batch, " "))
		batch = nil
	}
	length := 0
	for _, n := range names {
		if length+len(n)+1 > budget {
			flush()
			length = 0
		}
		batch = append(batch, n)
		length += len(n) + 1
	}
	flush()

	Numeric(ctx, actor, numeric.RplEndOfNames, []string{channel.Name}, "End of /NAMES list")
}
