package handlers

import (
	"strings"
	"time"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// TextMessageHandler implements PRIVMSG and NOTICE. The recipient must
// resolve to either a user or a channel; both kinds are routed through
// the outbound-message chain, which applies away auto-reply (user
// targets), moderation/no-external-messages gating (channel targets),
// and final fan-out.
type TextMessageHandler struct{}

func (TextMessageHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "PRIVMSG" && msg.Command != "NOTICE" {
		return NotMatched()
	}
	isNotice := msg.Command == "NOTICE"

	if len(msg.Args) < 1 {
		if !isNotice {
			Numeric(ctx, actor, numeric.ErrNoRecipient, nil, "No recipient given ("+msg.Command+")")
		}
		return Matched()
	}
	text := ""
	if msg.HasTrailing {
		text = msg.Trailing
	} else if len(msg.Args) > 1 {
		text = strings.Join(msg.Args[1:], " ")
	}
	if text == "" {
		if !isNotice {
			Numeric(ctx, actor, numeric.ErrNoTextToSend, nil, "No text to send")
		}
		return Matched()
	}

	if msg.Command == "PRIVMSG" {
		actor.LastMessage = time.Now()
	}

	for _, target := range strings.Split(msg.Args[0], ",") {
		deliverOne(ctx, actor, target, msg.Command, text, isNotice)
	}
	return Matched()
}

func deliverOne(ctx *Context, actor *model.User, target, verb, text string, isNotice bool) {
	out := OutboundMessage{Sender: actor, Target: target, Verb: verb, Text: text}

	if strings.HasPrefix(target, "#") {
		if !ctx.Channels.Has(target) {
			if !isNotice {
				Numeric(ctx, actor, numeric.ErrNoSuchChannel, []string{target}, "No such channel")
			}
			return
		}
	} else if _, ok := ctx.Users.ByNick(target); !ok {
		if !isNotice {
			Numeric(ctx, actor, numeric.ErrNoSuchNick, []string{target}, "No such nick/channel")
		}
		return
	}

	// The chain's final-delivery handler (registered once, at wiring
	// time, ahead of every side-effect handler so it runs last) performs
	// the actual fan-out; a message that survives to the very end of the
	// chain with no final handler registered is simply dropped, per
	// spec section 4.5.
	ctx.Pipeline.DispatchOutbound(ctx, out)
}
