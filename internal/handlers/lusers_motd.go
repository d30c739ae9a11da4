package handlers

import (
	"strconv"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// LusersHandler implements LUSERS: a snapshot of the standard user/op/
// channel/server counters.
type LusersHandler struct{}

func (LusersHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "LUSERS" {
		return NotMatched()
	}

	var total, operators int
	ctx.Users.ForEach(func(u *model.User) {
		total++
		if u.IsOperator() {
			operators++
		}
	})
	var channels int
	ctx.Channels.ForEach(func(*model.Channel) { channels++ })

	Numeric(ctx, actor, numeric.RplLuserClient, nil, strconv.Itoa(total)+" users, 0 services, 1 server")
	Numeric(ctx, actor, numeric.RplLuserOp, []string{strconv.Itoa(operators)}, "operator(s) online")
	Numeric(ctx, actor, numeric.RplLuserUnknown, []string{"0"}, "unknown connection(s)")
	Numeric(ctx, actor, numeric.RplLuserChannels, []string{strconv.Itoa(channels)}, "channels formed")
	Numeric(ctx, actor, numeric.RplLuserMe, nil, "I have "+strconv.Itoa(total)+" clients and 1 server")
	return Matched()
}

// MotdHandler implements MOTD: the configured message-of-the-day lines,
// or ErrNoMotd semantics folded into a bare start/end pair when empty.
type MotdHandler struct{}

func (MotdHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "MOTD" {
		return NotMatched()
	}
	Numeric(ctx, actor, numeric.RplMotdStart, nil, "- "+ctx.ServerName+" Message of the day - ")
	for _, line := range ctx.MOTD {
		Numeric(ctx, actor, numeric.RplMotd, nil, "- "+line)
	}
	Numeric(ctx, actor, numeric.RplEndOfMotd, nil, "End of /MOTD command")
	return Matched()
}
