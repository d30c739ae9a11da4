package handlers

import (
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
)

// Numeric builds and enqueues a numeric reply to target. Per spec
// section 6, the first argument of every numeric is the target
// nickname; args supplies everything after that, and trailing (if
// non-empty) becomes the colon-prefixed final argument.
func Numeric(ctx *Context, target *model.User, code string, args []string, trailing string) {
	full := append([]string{target.Nick()}, args...)
	msg := &ircmsg.Message{
		Prefix:  ctx.ServerName,
		Command: code,
		Args:    full,
	}
	if trailing != "" {
		msg.Trailing = trailing
		msg.HasTrailing = true
	}
	target.Enqueue(msg)
}

// NumericRaw is like Numeric but for replies sent before a nickname has
// been assigned to the connection (registration-time errors address the
// target as "*").
func NumericRaw(ctx *Context, enqueue func(*ircmsg.Message), placeholderNick string, code string, args []string, trailing string) {
	full := append([]string{placeholderNick}, args...)
	msg := &ircmsg.Message{
		Prefix:  ctx.ServerName,
		Command: code,
		Args:    full,
	}
	if trailing != "" {
		msg.Trailing = trailing
		msg.HasTrailing = true
	}
	enqueue(msg)
}

// FromUser builds a message with a full nick!user@host prefix, as used
// on JOIN/PART/QUIT/NICK/PRIVMSG/NOTICE broadcasts. The trailing text is
// clipped, if necessary, so the serialised line still fits the 510-byte
// payload limit.
func FromUser(u *model.User, command string, args []string, trailing string) *ircmsg.Message {
	msg := &ircmsg.Message{
		Prefix:  u.Fullname(),
		Command: command,
		Args:    args,
	}
	if trailing != "" || command == "PRIVMSG" || command == "NOTICE" {
		msg.Trailing = trailing
		msg.HasTrailing = true
	}
	if over := ircmsg.EncodedLength(msg) - (ircmsg.MaxLineLength - 2); over > 0 && over < len(msg.Trailing) {
		msg.Trailing = msg.Trailing[:len(msg.Trailing)-over]
	}
	return msg
}

// FromServer builds a message prefixed with the server name, for
// non-numeric server-originated lines (PING replies, server NOTICEs).
func FromServer(ctx *Context, command string, args []string, trailing string) *ircmsg.Message {
	msg := &ircmsg.Message{
		Prefix:  ctx.ServerName,
		Command: command,
		Args:    args,
	}
	if trailing != "" {
		msg.Trailing = trailing
		msg.HasTrailing = true
	}
	return msg
}
