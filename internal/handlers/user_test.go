package handlers

import "testing"

func TestUserHandlerRejectsSecondUserUnconditionally(t *testing.T) {
	ctx := newTestContext()
	alice := newRegisteredUser(ctx, "alice")

	ctx.Pipeline.DispatchCommand(ctx, alice, mustParse(t, "USER alice 0 * :Alice Again"))

	msgs := drain(alice)
	if len(msgs) != 1 || msgs[0].Command != "462" {
		t.Errorf("expected ERR_ALREADYREGISTERED, got %+v", msgs)
	}
}
