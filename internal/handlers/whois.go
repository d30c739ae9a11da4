package handlers

import (
	"strconv"
	"strings"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/modeset"
	"metallircd/internal/numeric"
)

// WhoisHandler implements WHOIS nick[,nick...]. An invisible target is
// only shown when the requester names it exactly; WHOIS never searches
// masks against invisible users.
type WhoisHandler struct{}

func (WhoisHandler) HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	if msg.Command != "WHOIS" {
		return NotMatched()
	}
	target := ""
	if len(msg.Args) > 0 {
		target = msg.Args[len(msg.Args)-1]
	}
	if target == "" {
		Numeric(ctx, actor, numeric.ErrNoRecipient, nil, "No nickname given")
		return Matched()
	}

	for _, nick := range strings.Split(target, ",") {
		whoisOne(ctx, actor, nick)
	}
	Numeric(ctx, actor, numeric.RplEndOfWhois, []string{target}, "End of /WHOIS list")
	return Matched()
}

func whoisOne(ctx *Context, actor *model.User, nick string) {
	u, ok := ctx.Users.ByNick(nick)
	if !ok {
		Numeric(ctx, actor, numeric.ErrNoSuchNick, []string{nick}, "No such nick/channel")
		return
	}
	if u.IsInvisible() && !strings.EqualFold(u.Nick(), nick) {
		Numeric(ctx, actor, numeric.ErrNoSuchNick, []string{nick}, "No such nick/channel")
		return
	}

	Numeric(ctx, actor, numeric.RplWhoisUser, []string{u.Nick(), u.Username(), u.Hostname(), "*"}, u.Realname())

	if names := membershipNames(u, actor); len(names) > 0 {
		Numeric(ctx, actor, numeric.RplWhoisChannels, []string{u.Nick()}, strings.Join(names, " "))
	}

	Numeric(ctx, actor, numeric.RplWhoisServer, []string{u.Nick(), ctx.ServerName}, "metallircd")

	if u.IsOperator() {
		Numeric(ctx, actor, numeric.RplWhoisOperator, []string{u.Nick()}, "is an IRC operator")
	}

	idle := int64(0)
	if !u.LastMessage.IsZero() {
		if d := ctx.now().Sub(u.LastMessage); d > 0 {
			idle = int64(d.Seconds())
		}
	}
	Numeric(ctx, actor, numeric.RplWhoisIdle, []string{u.Nick(), strconv.FormatInt(idle, 10)}, "seconds idle")

	if away, ok := u.AwayMessage(); ok {
		Numeric(ctx, actor, numeric.RplAway, []string{u.Nick()}, away)
	}
}

// membershipNames renders the channel-name list shown in RPL_WHOISCHANNELS,
// prefixing each name with the membership's best symbol and hiding
// channels the requester can't see into (+s channels they aren't in).
func membershipNames(u *model.User, actor *model.User) []string {
	var names []string
	for _, m := range u.Channels {
		if m.Channel.Modes().Contains('s') && !m.Channel.Has(actor) {
			continue
		}
		name := m.Channel.Name
		if prefix := modeset.Best(m.Modes()); prefix != 0 {
			name = string(prefix) + name
		}
		names = append(names, name)
	}
	return names
}
