package handlers

import (
	"testing"

	"metallircd/internal/ircmsg"
)

func TestNickHandlerRejectsErroneousNick(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	out := ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "NICK 1bad"))
	if !out.Matched {
		t.Fatal("expected NICK to be matched")
	}
	if out.Action.Kind() != Nothing {
		t.Error("an erroneous nick should not request a recycling action")
	}
	msgs := drain(alice)
	if len(msgs) != 1 || msgs[0].Command != "432" {
		t.Errorf("expected a single ERR_ERRONEUSNICKNAME reply, got %+v", msgs)
	}
}

func TestNickHandlerRequestsChangeNickAction(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	out := ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "NICK alyce"))
	if out.Action.Kind() != ChangeNick || out.Action.NewNick() != "alyce" {
		t.Errorf("expected a ChangeNick(alyce) action, got %v", out.Action)
	}
}

func TestNickHandlerNoOpCaseOnlyChangeStillRequestsRename(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	out := ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "NICK Alice"))
	if out.Action.Kind() != ChangeNick || out.Action.NewNick() != "Alice" {
		t.Errorf("a pure case change should still be forwarded to the recycler, got %v", out.Action)
	}
}

func TestNickHandlerExactRepeatIsNoOp(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	out := ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "NICK alice"))
	if out.Action.Kind() != Nothing {
		t.Errorf("repeating the exact current nick should be a no-op, got %v", out.Action)
	}
}

func TestNickHandlerIgnoresOtherCommands(t *testing.T) {
	h := NickHandler{}
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")
	out := h.HandleCommand(ctx, alice, &ircmsg.Message{Command: "PING"})
	if out.Matched {
		t.Error("NickHandler should not match PING")
	}
}
