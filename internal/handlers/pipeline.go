// Package handlers implements the pluggable command/outbound-message/
// mode-handler pipeline and the one handler per protocol verb that ships
// with the core. Dispatch tries handlers in reverse registration order
// (the last handler registered gets first refusal) and stops at the
// first match, mirroring the original ModulesHandler's reverse-iteration
// rule — without any reflection or trait-object downcasting, since a Go
// handler simply implements whichever of the four interfaces below it
// supports and registers itself into that pipeline explicitly.
package handlers

import (
	"time"

	"metallircd/internal/ircmsg"
	"metallircd/internal/logging"
	"metallircd/internal/model"
	"metallircd/internal/registry"
)

// RecyclingAction is a discriminated request from a command handler to
// the recycler. Only these three cases require the recycler's exclusive
// access to the user registry.
type RecyclingAction struct {
	kind    recyclingKind
	newNick string
}

type recyclingKind int

const (
	Nothing recyclingKind = iota
	ChangeNick
	Zombify
)

// NothingAction is the default no-op recycling request.
var NothingAction = RecyclingAction{kind: Nothing}

// ChangeNickAction requests the recycler attempt a rename to newNick.
func ChangeNickAction(newNick string) RecyclingAction {
	return RecyclingAction{kind: ChangeNick, newNick: newNick}
}

// ZombifyAction marks the connection for teardown.
var ZombifyAction = RecyclingAction{kind: Zombify}

func (a RecyclingAction) Kind() recyclingKind { return a.kind }
func (a RecyclingAction) NewNick() string     { return a.newNick }

func (k recyclingKind) String() string {
	switch k {
	case ChangeNick:
		return "ChangeNick"
	case Zombify:
		return "Zombify"
	default:
		return "Nothing"
	}
}

// Context is the environment every handler dispatches against: the
// shared registries, server identity, clock, oper credentials and log
// sink. It is built once at server wiring time (internal/ircd) and
// passed down by pointer; handlers never hold ambient global state of
// their own, per spec section 9's note on global mutable state.
type Context struct {
	Users    *registry.UserRegistry
	Channels *registry.ChannelRegistry

	ServerName string
	Version    string
	Created    time.Time
	MOTD       []string

	Opers map[string]string

	Now func() time.Time

	Log *logging.Sink

	// RequestShutdown is invoked by DIE after authorisation succeeds.
	RequestShutdown func()

	// Pipeline is the same pipeline this context's handlers are
	// registered into; PRIVMSG/NOTICE command handlers use it to run
	// outbound messages through the message-sending chain.
	Pipeline *Pipeline
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Outcome is what a command handler returns.
type Outcome struct {
	Matched bool
	Action  RecyclingAction
}

// Matched is a convenience constructor for a handled command with no
// recycling action required.
func Matched() Outcome { return Outcome{Matched: true, Action: NothingAction} }

// NotMatched signals this handler does not recognise the command.
func NotMatched() Outcome { return Outcome{Matched: false} }

// WithAction wraps a recycling action in a matched outcome.
func WithAction(a RecyclingAction) Outcome { return Outcome{Matched: true, Action: a} }

// CommandHandler handles one or more protocol verbs.
type CommandHandler interface {
	HandleCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome
}

// OutboundMessage is a PRIVMSG/NOTICE in flight through the chain.
type OutboundMessage struct {
	Sender  *model.User
	Target  string // nick or channel name, as given by the client
	Verb    string // "PRIVMSG" or "NOTICE"
	Text    string
}

// MessageHandler transforms or consumes an outbound text message. It
// returns the (possibly modified) message and true to let the chain
// continue, or ok=false to consume it (the chain stops; nothing past a
// consuming handler runs, including the final fan-out handler — so a
// consumer is responsible for any delivery it wants to still happen).
type MessageHandler interface {
	HandleOutboundMessage(ctx *Context, msg OutboundMessage) (OutboundMessage, bool)
}

// ModeResult is the three-way answer a mode handler gives.
type ModeResult int

const (
	ModeUnknown ModeResult = iota
	ModeAccepted
	ModeRefused
)

// UserModeHandler decides one user-mode flag.
type UserModeHandler interface {
	HandleUserMode(ctx *Context, asker, target *model.User, flag byte, set bool) ModeResult
}

// ArgCursor lets a channel-mode handler consume the next mode argument
// (e.g. a ban mask or a limit) when its flag requires one.
type ArgCursor struct {
	args []string
	pos  int
}

// NewArgCursor wraps a slice of remaining MODE arguments.
func NewArgCursor(args []string) *ArgCursor { return &ArgCursor{args: args} }

// Next returns the next argument and advances, or ("", false) if
// exhausted.
func (c *ArgCursor) Next() (string, bool) {
	if c.pos >= len(c.args) {
		return "", false
	}
	v := c.args[c.pos]
	c.pos++
	return v, true
}

// ChannelModeHandler decides one channel-mode flag.
type ChannelModeHandler interface {
	HandleChannelMode(ctx *Context, actor *model.User, channel *model.Channel, membership *model.Membership, flag byte, set bool, args *ArgCursor) ModeResult
}

// Pipeline holds the four ordered handler lists and implements
// reverse-registration-order dispatch.
type Pipeline struct {
	commands     []CommandHandler
	messages     []MessageHandler
	userModes    []UserModeHandler
	channelModes []ChannelModeHandler
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) RegisterCommand(h CommandHandler)         { p.commands = append(p.commands, h) }
func (p *Pipeline) RegisterMessage(h MessageHandler)          { p.messages = append(p.messages, h) }
func (p *Pipeline) RegisterUserMode(h UserModeHandler)        { p.userModes = append(p.userModes, h) }
func (p *Pipeline) RegisterChannelMode(h ChannelModeHandler)  { p.channelModes = append(p.channelModes, h) }

// DispatchCommand tries command handlers in reverse registration order,
// stopping at the first match.
func (p *Pipeline) DispatchCommand(ctx *Context, actor *model.User, msg *ircmsg.Message) Outcome {
	for i := len(p.commands) - 1; i >= 0; i-- {
		if out := p.commands[i].HandleCommand(ctx, actor, msg); out.Matched {
			return out
		}
	}
	return NotMatched()
}

// DispatchOutbound runs msg through the outbound-message chain in
// reverse registration order. Returns false if some handler consumed
// the message.
func (p *Pipeline) DispatchOutbound(ctx *Context, msg OutboundMessage) (OutboundMessage, bool) {
	cur := msg
	for i := len(p.messages) - 1; i >= 0; i-- {
		var ok bool
		cur, ok = p.messages[i].HandleOutboundMessage(ctx, cur)
		if !ok {
			return cur, false
		}
	}
	return cur, true
}

// DispatchUserMode walks the user-mode chain for a single flag,
// returning the first non-unknown verdict.
func (p *Pipeline) DispatchUserMode(ctx *Context, asker, target *model.User, flag byte, set bool) ModeResult {
	for i := len(p.userModes) - 1; i >= 0; i-- {
		if r := p.userModes[i].HandleUserMode(ctx, asker, target, flag, set); r != ModeUnknown {
			return r
		}
	}
	return ModeUnknown
}

// DispatchChannelMode walks the channel-mode chain for a single flag.
func (p *Pipeline) DispatchChannelMode(ctx *Context, actor *model.User, channel *model.Channel, membership *model.Membership, flag byte, set bool, args *ArgCursor) ModeResult {
	for i := len(p.channelModes) - 1; i >= 0; i-- {
		if r := p.channelModes[i].HandleChannelMode(ctx, actor, channel, membership, flag, set, args); r != ModeUnknown {
			return r
		}
	}
	return ModeUnknown
}
