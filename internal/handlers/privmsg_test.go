package handlers

import (
	"testing"

	"metallircd/internal/modeset"
)

func TestPrivmsgDirectDeliveryToUser(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG bob :hello there"))

	msgs := drain(bob)
	if len(msgs) != 1 || msgs[0].Command != "PRIVMSG" || msgs[0].Trailing != "hello there" {
		t.Errorf("expected bob to receive the PRIVMSG, got %+v", msgs)
	}
}

func TestPrivmsgUnknownNickReportsNoSuchNick(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG ghost :hi"))

	msgs := drain(alice)
	if len(msgs) != 1 || msgs[0].Command != "401" {
		t.Errorf("expected ERR_NOSUCHNICK, got %+v", msgs)
	}
}

// TestAwayAutoReplyBeforeDelivery exercises the chain ordering spec
// section 4.5 requires: the sender sees RPL_AWAY before (and regardless
// of) the recipient's own delivery.
func TestAwayAutoReplyBeforeDelivery(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")
	bob.SetAway("out to lunch")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG bob :you there?"))

	aliceMsgs := drain(alice)
	if len(aliceMsgs) != 1 || aliceMsgs[0].Command != "301" || aliceMsgs[0].Trailing != "out to lunch" {
		t.Errorf("expected alice to receive RPL_AWAY, got %+v", aliceMsgs)
	}
	bobMsgs := drain(bob)
	if len(bobMsgs) != 1 || bobMsgs[0].Command != "PRIVMSG" {
		t.Errorf("bob being away should not block delivery, got %+v", bobMsgs)
	}
}

func TestChannelGateBlocksExternalMessagesOnPlusN(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")

	ctx.Pipeline.DispatchCommand(ctx, bob, mustParse(t, "JOIN #general"))
	drain(bob)

	channel, _ := ctx.Channels.Get("#general")
	channel.SetModes(channel.Modes().Insert('n'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG #general :hi"))

	aliceMsgs := drain(alice)
	if len(aliceMsgs) != 1 || aliceMsgs[0].Command != "404" {
		t.Errorf("expected ERR_CANNOTSENDTOCHAN for a non-member on +n, got %+v", aliceMsgs)
	}
	if len(drain(bob)) != 0 {
		t.Error("a blocked message should never reach the channel")
	}
}

func TestChannelGateAllowsOperatorBypass(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")
	alice.SetModes(alice.Modes().Insert('o'))

	ctx.Pipeline.DispatchCommand(ctx, bob, mustParse(t, "JOIN #general"))
	drain(bob)

	channel, _ := ctx.Channels.Get("#general")
	channel.SetModes(channel.Modes().Insert('n'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG #general :hi"))

	bobMsgs := drain(bob)
	if len(bobMsgs) != 1 || bobMsgs[0].Command != "PRIVMSG" {
		t.Errorf("a network operator should bypass +n, got %+v", bobMsgs)
	}
}

func TestChannelGateModeratedRequiresVoice(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")

	ctx.Pipeline.DispatchCommand(ctx, bob, mustParse(t, "JOIN #general"))
	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "JOIN #general"))
	drain(bob)
	drain(alice)

	channel, _ := ctx.Channels.Get("#general")
	channel.SetModes(channel.Modes().Insert('m'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG #general :hi"))
	aliceMsgs := drain(alice)
	if len(aliceMsgs) != 1 || aliceMsgs[0].Command != "404" {
		t.Errorf("a voiceless member should be blocked on +m, got %+v", aliceMsgs)
	}

	membership, _ := channel.MembershipOf(alice)
	membership.SetModes(membership.Modes().Insert(modeset.Voice))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "PRIVMSG #general :hi again"))
	if len(drain(bob)) != 1 {
		t.Error("a voiced member should be able to speak on +m")
	}
}
