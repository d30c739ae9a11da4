package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// OperHandler implements OPER against the configured credentials map.
type OperHandler struct{}

func (OperHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "OPER" {
		return NotMatched()
	}
	if len(msg.Args) < 2 {
		Numeric(ctx, actor, numeric.ErrNeedMoreParams, []string{"OPER"}, "Not enough parameters")
		return Matched()
	}
	name, pass := msg.Args[0], msg.Args[1]
	if want, ok := ctx.Opers[name]; !ok || want != pass {
		Numeric(ctx, actor, numeric.ErrPasswdMismatch, nil, "Password incorrect")
		return Matched()
	}
	actor.SetModes(actor.Modes().Insert('o'))
	Numeric(ctx, actor, numeric.RplYoureOper, nil, "You are now an IRC operator")
	return Matched()
}
