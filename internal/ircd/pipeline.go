package ircd

import "metallircd/internal/handlers"

// buildPipeline registers every shipped command/outbound/mode handler in
// the order spec section 4.5's reverse-registration-wins rule requires.
//
// Outbound chain ordering matters for scenario 4 (away auto-reply before
// delivery): handlers execute in the REVERSE of registration order, so
// the first handler registered here runs LAST and the last registered
// runs FIRST.
//   registered: FinalFanOut, ChannelGate, AwayNotice
//   executes:   AwayNotice -> ChannelGate -> FinalFanOut
func buildPipeline() *handlers.Pipeline {
	p := handlers.NewPipeline()

	p.RegisterCommand(handlers.NickHandler{})
	p.RegisterCommand(handlers.UserHandler{})
	p.RegisterCommand(handlers.QuitHandler{})
	p.RegisterCommand(handlers.JoinHandler{})
	p.RegisterCommand(handlers.PartHandler{})
	p.RegisterCommand(handlers.TextMessageHandler{})
	p.RegisterCommand(handlers.TopicHandler{})
	p.RegisterCommand(handlers.NamesHandler{})
	p.RegisterCommand(handlers.ListHandler{})
	p.RegisterCommand(handlers.ModeHandler{})
	p.RegisterCommand(handlers.OperHandler{})
	p.RegisterCommand(handlers.DieHandler{})
	p.RegisterCommand(handlers.PingHandler{})
	p.RegisterCommand(handlers.AwayHandler{})
	p.RegisterCommand(handlers.TimeHandler{})
	p.RegisterCommand(handlers.WhoHandler{})
	p.RegisterCommand(handlers.WhoisHandler{})
	p.RegisterCommand(handlers.LusersHandler{})
	p.RegisterCommand(handlers.MotdHandler{})

	p.RegisterMessage(handlers.FinalFanOutHandler{})
	p.RegisterMessage(handlers.ChannelGateHandler{})
	p.RegisterMessage(handlers.AwayNoticeHandler{})

	p.RegisterUserMode(handlers.BaselineUserModeHandler{})
	p.RegisterChannelMode(handlers.BaselineChannelModeHandler{})

	return p
}
