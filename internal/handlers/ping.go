package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
)

// PingHandler answers PING with PONG, echoing the server name and the
// client's token.
type PingHandler struct{}

func (PingHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "PING" {
		return NotMatched()
	}
	token := ctx.ServerName
	if msg.HasTrailing {
		token = msg.Trailing
	} else if len(msg.Args) > 0 {
		token = msg.Args[0]
	}
	reply := FromServer(ctx, "PONG", []string{ctx.ServerName}, token)
	actor.Enqueue(reply)
	return Matched()
}
