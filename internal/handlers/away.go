package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// AwayHandler implements AWAY: no arguments clears the away state,
// one argument (trailing or first arg) sets it.
type AwayHandler struct{}

func (AwayHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "AWAY" {
		return NotMatched()
	}
	text := ""
	if msg.HasTrailing {
		text = msg.Trailing
	} else if len(msg.Args) > 0 {
		text = msg.Args[0]
	}
	actor.SetAway(text)
	if text == "" {
		Numeric(ctx, actor, numeric.RplUnAway, nil, "You are no longer marked as being away")
	} else {
		Numeric(ctx, actor, numeric.RplNowAway, nil, "You have been marked as being away")
	}
	return Matched()
}
