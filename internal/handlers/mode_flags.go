package handlers

import (
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// BaselineUserModeHandler implements the baseline user-mode profile:
// 'i' is self-toggleable, 'o' can only be cleared by the user (granting
// it requires OPER), and 'a' is never set directly via MODE (only via
// AWAY).
type BaselineUserModeHandler struct{}

func (BaselineUserModeHandler) HandleUserMode(ctx *Context, asker, target *model.User, flag byte, set bool) ModeResult {
	switch flag {
	case 'i':
		applyUserFlag(target, flag, set)
		return ModeAccepted
	case 'o':
		if set {
			// Silently ignored: operator status is granted only via OPER,
			// matching RFC 2812's mandated silent-ignore of self +o.
			return ModeAccepted
		}
		applyUserFlag(target, flag, false)
		return ModeAccepted
	case 'a':
		// AWAY is the only path to this flag.
		return ModeAccepted
	default:
		return ModeUnknown
	}
}

func applyUserFlag(u *model.User, flag byte, set bool) {
	m := u.Modes()
	if set {
		m = m.Insert(flag)
	} else {
		m = m.Remove(flag)
	}
	u.SetModes(m)
}

// BaselineChannelModeHandler implements the baseline channel-mode
// profile: s/n/m/t are plain channel flags; v/o mutate the asking
// membership's target (mutation requires the actor already be a
// channel op or network operator, enforced by the caller before this
// handler is even reached for a write).
type BaselineChannelModeHandler struct{}

func (BaselineChannelModeHandler) HandleChannelMode(ctx *Context, actor *model.User, channel *model.Channel, actorMembership *model.Membership, flag byte, set bool, args *ArgCursor) ModeResult {
	switch flag {
	case 's', 'n', 'm', 't':
		if !authorisedToMutate(actor, actorMembership) {
			Numeric(ctx, actor, numeric.ErrChanOpPrivsNeeded, []string{channel.Name}, "You're not channel operator")
			return ModeRefused
		}
		m := channel.Modes()
		if set {
			m = m.Insert(flag)
		} else {
			m = m.Remove(flag)
		}
		channel.SetModes(m)
		return ModeAccepted
	case 'v', 'o':
		return applyMembershipFlag(ctx, actor, channel, actorMembership, flag, set, args)
	case 'b':
		// Ban lists are not implemented; read form answers with an empty
		// list terminator, matching the teacher's own stub behaviour.
		Numeric(ctx, actor, numeric.RplEndOfBanList, []string{channel.Name}, "End of channel ban list")
		return ModeAccepted
	default:
		return ModeUnknown
	}
}

func authorisedToMutate(actor *model.User, actorMembership *model.Membership) bool {
	if actor.IsOperator() {
		return true
	}
	return actorMembership != nil && actorMembership.Modes().Contains('o')
}

func applyMembershipFlag(ctx *Context, actor *model.User, channel *model.Channel, actorMembership *model.Membership, flag byte, set bool, args *ArgCursor) ModeResult {
	if !authorisedToMutate(actor, actorMembership) {
		Numeric(ctx, actor, numeric.ErrChanOpPrivsNeeded, []string{channel.Name}, "You're not channel operator")
		return ModeRefused
	}
	nick, ok := args.Next()
	if !ok {
		return ModeRefused
	}
	targetUser, ok := ctx.Users.ByNick(nick)
	if !ok {
		Numeric(ctx, actor, numeric.ErrNoSuchNick, []string{nick}, "No such nick/channel")
		return ModeRefused
	}
	targetMembership, isMember := channel.MembershipOf(targetUser)
	if !isMember {
		Numeric(ctx, actor, numeric.ErrUserNotInChannel, []string{nick, channel.Name}, "They aren't on that channel")
		return ModeRefused
	}
	m := targetMembership.Modes()
	if set {
		m = m.Insert(flag)
	} else {
		m = m.Remove(flag)
	}
	targetMembership.SetModes(m)
	return ModeAccepted
}
