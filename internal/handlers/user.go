package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// UserHandler rejects USER for already-registered connections. Per spec
// section 9's Open Question decision, this is unconditional: the
// original source sometimes tolerated a second USER, but this
// implementation always answers ERR_ALREADYREGISTERED once registered.
type UserHandler struct{}

func (UserHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "USER" {
		return NotMatched()
	}
	Numeric(ctx, actor, numeric.ErrAlreadyRegistered, nil, "Unauthorized command (already registered)")
	return Matched()
}
