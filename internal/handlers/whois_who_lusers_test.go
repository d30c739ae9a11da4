package handlers

import "testing"

func TestWhoisUnknownNick(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "WHOIS ghost"))
	msgs := drain(alice)
	if len(msgs) != 2 || msgs[0].Command != "401" || msgs[1].Command != "318" {
		t.Errorf("expected ERR_NOSUCHNICK then RPL_ENDOFWHOIS, got %+v", msgs)
	}
}

func TestWhoisRevealsInvisibleUserOnExactNick(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")
	bob.SetModes(bob.Modes().Insert('i'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "WHOIS bob"))
	msgs := drain(alice)
	if len(msgs) != 4 || msgs[0].Command != "311" {
		t.Errorf("an exact nick match should still reveal an invisible user, got %+v", msgs)
	}
}

func TestWhoisReportsOperatorAndIdle(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")
	bob.SetModes(bob.Modes().Insert('o'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "WHOIS bob"))
	msgs := drain(alice)

	var sawUser, sawOperator, sawIdle, sawEnd bool
	for _, m := range msgs {
		switch m.Command {
		case "311":
			sawUser = true
		case "313":
			sawOperator = true
		case "317":
			sawIdle = true
		case "318":
			sawEnd = true
		}
	}
	if !sawUser || !sawOperator || !sawIdle || !sawEnd {
		t.Errorf("expected user/operator/idle/end replies, got %+v", msgs)
	}
}

func TestWhoListsChannelMembers(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "JOIN #general"))
	ctx.Pipeline.DispatchCommand(ctx, bob, mustParse(t, "JOIN #general"))
	drain(alice)
	drain(bob)

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "WHO #general"))
	msgs := drain(alice)
	if len(msgs) != 3 {
		t.Fatalf("expected 2 WHO replies + end-of-who, got %d: %+v", len(msgs), msgs)
	}
	if msgs[len(msgs)-1].Command != "315" {
		t.Errorf("expected the last reply to be RPL_ENDOFWHO, got %+v", msgs[len(msgs)-1])
	}
}

func TestWhoOnSecretChannelHiddenFromNonMember(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")

	ctx.Pipeline.DispatchCommand(ctx, bob, mustParse(t, "JOIN #secret"))
	drain(bob)
	channel, _ := ctx.Channels.Get("#secret")
	channel.SetModes(channel.Modes().Insert('s'))

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "WHO #secret"))
	msgs := drain(alice)
	if len(msgs) != 1 || msgs[0].Command != "315" {
		t.Errorf("a non-member should only see end-of-who for a +s channel, got %+v", msgs)
	}
}

func TestLusersCountsUsersOperatorsAndChannels(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	bob := newRegisteredUser(ctx, "bob")
	bob.SetModes(bob.Modes().Insert('o'))
	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "JOIN #general"))
	drain(alice)

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "LUSERS"))
	msgs := drain(alice)
	if len(msgs) != 5 {
		t.Fatalf("expected 5 LUSERS replies, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Command != "251" || msgs[1].Command != "252" || msgs[4].Command != "255" {
		t.Errorf("unexpected LUSERS numeric sequence: %+v", msgs)
	}
}

func TestMotdEmitsConfiguredLines(t *testing.T) {
	ctx := newTestContext()
	ctx.MOTD = []string{"welcome", "be nice"}
	alice := newRegisteredUser(ctx, "alice")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "MOTD"))
	msgs := drain(alice)
	if len(msgs) != 4 {
		t.Fatalf("expected start + 2 lines + end, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Command != "375" || msgs[3].Command != "376" {
		t.Errorf("unexpected MOTD numeric sequence: %+v", msgs)
	}
}
