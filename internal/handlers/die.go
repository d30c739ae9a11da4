package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// DieHandler implements the operator-only DIE command: it sets the
// process shutdown signal via ctx.RequestShutdown.
type DieHandler struct{}

func (DieHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "DIE" {
		return NotMatched()
	}
	if !actor.IsOperator() {
		Numeric(ctx, actor, numeric.ErrNoPrivileges, nil, "Permission Denied- You're not an IRC operator")
		return Matched()
	}
	if ctx.RequestShutdown != nil {
		ctx.RequestShutdown()
	}
	return Matched()
}
