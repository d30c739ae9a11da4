package handlers

import (
	"strconv"
	"strings"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// NamesHandler implements NAMES, respecting +s (a secret channel's
// member list is visible only to its own members).
type NamesHandler struct{}

func (NamesHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "NAMES" {
		return NotMatched()
	}
	if len(msg.Args) < 1 {
		ctx.Channels.ForEach(func(c *model.Channel) {
			namesForChannel(ctx, actor, c)
		})
		Numeric(ctx, actor, numeric.RplEndOfNames, []string{"*"}, "End of /NAMES list")
		return Matched()
	}
	for _, name := range strings.Split(msg.Args[0], ",") {
		if c, ok := ctx.Channels.Get(name); ok {
			namesForChannel(ctx, actor, c)
		}
		Numeric(ctx, actor, numeric.RplEndOfNames, []string{name}, "End of /NAMES list")
	}
	return Matched()
}

func namesForChannel(ctx *Context, actor *model.User, c *model.Channel) {
	if c.Modes().Contains('s') && !c.Has(actor) {
		return
	}
	sendNames(ctx, actor, c)
}

// ListHandler implements LIST, with an optional comma-separated channel
// argument (supplemented from original_source's list.rs; the teacher
// only had bare LIST). Respects +s by omitting secret channels from the
// listing for non-members entirely.
type ListHandler struct{}

func (ListHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "LIST" {
		return NotMatched()
	}
	emit := func(c *model.Channel) {
		if c.Modes().Contains('s') && !c.Has(actor) {
			return
		}
		Numeric(ctx, actor, numeric.RplList, []string{c.Name, strconv.Itoa(c.MemberCount())}, c.Topic())
	}
	if len(msg.Args) < 1 {
		ctx.Channels.ForEach(emit)
	} else {
		for _, name := range strings.Split(msg.Args[0], ",") {
			if c, ok := ctx.Channels.Get(name); ok {
				emit(c)
			}
		}
	}
	Numeric(ctx, actor, numeric.RplListEnd, nil, "End of /LIST")
	return Matched()
}
