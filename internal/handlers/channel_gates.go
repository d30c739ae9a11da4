package handlers

import (
	"metallircd/internal/modeset"
	"metallircd/internal/numeric"
)

// ChannelGateHandler enforces +n (no external messages) and +m
// (moderated) before a channel message reaches final fan-out. Channel
// operators and network operators bypass both checks (spec section 9's
// Open Question decision); everyone else needs membership for +n and
// voice-or-better for +m.
type ChannelGateHandler struct{}

func (ChannelGateHandler) HandleOutboundMessage(ctx *Context, msg OutboundMessage) (OutboundMessage, bool) {
	if len(msg.Target) == 0 || msg.Target[0] != '#' {
		return msg, true
	}
	channel, ok := ctx.Channels.Get(msg.Target)
	if !ok {
		return msg, true
	}
	if msg.Sender.IsOperator() {
		return msg, true
	}

	membership, isMember := channel.MembershipOf(msg.Sender)
	isChanOp := isMember && membership.Modes().Contains(modeset.Op)
	if isChanOp {
		return msg, true
	}

	modes := channel.Modes()
	if modes.Contains('n') && !isMember {
		Numeric(ctx, msg.Sender, numeric.ErrCannotSendToChan, []string{channel.Name}, "Cannot send to channel")
		return msg, false
	}
	if modes.Contains('m') {
		hasVoice := isMember && modeset.IsAtLeast(membership.Modes(), modeset.Empty().Insert(modeset.Voice))
		if !hasVoice {
			Numeric(ctx, msg.Sender, numeric.ErrCannotSendToChan, []string{channel.Name}, "Cannot send to channel")
			return msg, false
		}
	}
	return msg, true
}
