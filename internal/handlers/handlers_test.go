package handlers

import (
	"testing"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/registry"
)

// newTestContext builds a Context wired to fresh registries and this
// package's own concrete handlers, suitable for exercising one handler
// at a time without a real server or socket.
func newTestContext() *Context {
	p := NewPipeline()
	p.RegisterCommand(NickHandler{})
	p.RegisterCommand(UserHandler{})
	p.RegisterCommand(QuitHandler{})
	p.RegisterCommand(JoinHandler{})
	p.RegisterCommand(PartHandler{})
	p.RegisterCommand(TextMessageHandler{})
	p.RegisterCommand(TopicHandler{})
	p.RegisterCommand(NamesHandler{})
	p.RegisterCommand(ListHandler{})
	p.RegisterCommand(ModeHandler{})
	p.RegisterCommand(OperHandler{})
	p.RegisterCommand(DieHandler{})
	p.RegisterCommand(PingHandler{})
	p.RegisterCommand(AwayHandler{})
	p.RegisterCommand(TimeHandler{})
	p.RegisterCommand(WhoHandler{})
	p.RegisterCommand(WhoisHandler{})
	p.RegisterCommand(LusersHandler{})
	p.RegisterCommand(MotdHandler{})

	p.RegisterMessage(FinalFanOutHandler{})
	p.RegisterMessage(ChannelGateHandler{})
	p.RegisterMessage(AwayNoticeHandler{})

	p.RegisterUserMode(BaselineUserModeHandler{})
	p.RegisterChannelMode(BaselineChannelModeHandler{})

	return &Context{
		Users:      registry.NewUserRegistry(),
		Channels:   registry.NewChannelRegistry(),
		ServerName: "test.example",
		Version:    "test-0",
		Opers:      map[string]string{"admin": "secret"},
		Pipeline:   p,
	}
}

// newRegisteredUser inserts and returns a user, ready to act as the
// actor in a handler test.
func newRegisteredUser(ctx *Context, nick string) *model.User {
	u := model.NewUser(nick, nick, nick+" Realname", "host.example")
	if err := ctx.Users.Insert(u); err != nil {
		panic(err)
	}
	return u
}

// drain pulls every message currently queued on u's outbound channel.
func drain(u *model.User) []*ircmsg.Message {
	var out []*ircmsg.Message
	for {
		select {
		case m := <-u.Outbound:
			out = append(out, m)
		default:
			return out
		}
	}
}

func mustParse(t *testing.T, line string) *ircmsg.Message {
	t.Helper()
	msg, err := ircmsg.Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", line, err)
	}
	return msg
}
