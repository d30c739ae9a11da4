package handlers

import (
	"strings"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
	"metallircd/internal/registry"
)

// ModeHandler implements MODE for both targets: a nickname (user modes,
// self only) and a channel (membership or network-op required to read;
// channel-op or network-op required to write).
type ModeHandler struct{}

func (ModeHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "MODE" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.ErrNeedMoreParams, []string{"MODE"}, "Not enough parameters")
		return Matched()
	}
	target := msg.Args[0]
	rest := msg.Args[1:]

	if strings.HasPrefix(target, "#") {
		handleChannelMode(ctx, actor, target, rest)
		return Matched()
	}
	handleUserMode(ctx, actor, target, rest)
	return Matched()
}

func handleUserMode(ctx *Context, actor *model.User, target string, rest []string) {
	subject, ok := ctx.Users.ByNick(target)
	if !ok {
		Numeric(ctx, actor, numeric.ErrNoSuchNick, []string{target}, "No such nick/channel")
		return
	}
	if subject.ID != actor.ID {
		Numeric(ctx, actor, numeric.ErrUsersDontMatchMode, nil, "Cannot change mode for other users")
		return
	}
	if len(rest) == 0 {
		Numeric(ctx, actor, numeric.RplUModeIs, []string{subject.Modes().Render()}, "")
		return
	}

	sign := byte('+')
	changed := false
	for _, spec := range rest {
		for i := 0; i < len(spec); i++ {
			c := spec[i]
			if c == '+' || c == '-' {
				sign = c
				continue
			}
			set := sign == '+'
			if ctx.Pipeline.DispatchUserMode(ctx, actor, subject, c, set) == ModeAccepted {
				changed = true
			} else {
				Numeric(ctx, actor, numeric.ErrUModeUnknownFlag, nil, "Unknown MODE flag")
			}
		}
	}
	if changed {
		confirm := FromUser(actor, "MODE", []string{subject.Nick(), strings.Join(rest, " ")}, "")
		subject.Enqueue(confirm)
	}
}

func handleChannelMode(ctx *Context, actor *model.User, target string, rest []string) {
	channel, ok := ctx.Channels.Get(target)
	if !ok {
		Numeric(ctx, actor, numeric.ErrNoSuchChannel, []string{target}, "No such channel")
		return
	}
	membership, isMember := channel.MembershipOf(actor)
	if !isMember && !actor.IsOperator() {
		Numeric(ctx, actor, numeric.ErrNotOnChannel, []string{channel.Name}, "You're not on that channel")
		return
	}
	if len(rest) == 0 {
		Numeric(ctx, actor, numeric.RplChannelModeIs, []string{channel.Name, channel.Modes().Render()}, "")
		return
	}

	cursor := NewArgCursor(rest[1:])
	sign := byte('+')
	changed := false
	var appliedBuf strings.Builder
	for i := 0; i < len(rest[0]); i++ {
		c := rest[0][i]
		if c == '+' || c == '-' {
			sign = c
			appliedBuf.WriteByte(c)
			continue
		}
		set := sign == '+'
		result := ctx.Pipeline.DispatchChannelMode(ctx, actor, channel, membership, c, set, cursor)
		switch result {
		case ModeAccepted:
			changed = true
			appliedBuf.WriteByte(c)
		case ModeRefused:
			// side-effect error already emitted by the handler
		case ModeUnknown:
			Numeric(ctx, actor, numeric.ErrUnknownMode, []string{string(c)}, "is unknown mode char to me")
		}
	}

	if changed {
		confirm := FromUser(actor, "MODE", []string{channel.Name, appliedBuf.String()}, "")
		registry.SendTo(channel, confirm, nil)
	}
}
