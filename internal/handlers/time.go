package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// TimeHandler responds to TIME with the server's current time in the
// format RFC 2812 expects for RPL_TIME's free-form trailing text.
type TimeHandler struct{}

func (TimeHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "TIME" {
		return NotMatched()
	}
	now := ctx.now()
	Numeric(ctx, actor, numeric.RplTime, []string{ctx.ServerName}, now.Format("Mon Jan 2 2006 15:04:05 -0700"))
	return Matched()
}
