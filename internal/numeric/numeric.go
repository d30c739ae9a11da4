// Package numeric lists the RFC 2812 three-digit numeric reply codes the
// core is required to be able to emit. Wire text for each code is
// assembled by the caller (handlers package); numeric is just the
// agreed-upon code table, kept in one place so no handler hardcodes a
// string literal for a code shared across several replies.
package numeric

const (
	RplWelcome  = "001"
	RplYourHost = "002"
	RplCreated  = "003"
	RplMyInfo   = "004"
	RplISupport = "005"

	RplUModeIs = "221"

	RplLuserClient   = "251"
	RplLuserOp       = "252"
	RplLuserUnknown  = "253"
	RplLuserChannels = "254"
	RplLuserMe       = "255"

	RplAway        = "301"
	RplUnAway      = "305"
	RplNowAway     = "306"
	RplWhoisUser   = "311"
	RplWhoisServer = "312"
	RplWhoisOperator = "313"
	RplEndOfWho    = "315"
	RplWhoisIdle   = "317"
	RplEndOfWhois  = "318"
	RplWhoisChannels = "319"

	RplList       = "322"
	RplListEnd    = "323"
	RplChannelModeIs = "324"
	RplNoTopic    = "331"
	RplTopic      = "332"
	RplInviting   = "341"

	RplEndOfBanList = "368"

	RplWhoReply   = "352"
	RplNameReply  = "353"
	RplEndOfNames = "366"
	RplMotd       = "372"
	RplMotdStart  = "375"
	RplEndOfMotd  = "376"

	RplYoureOper = "381"

	RplTime = "391"

	ErrNoSuchNick    = "401"
	ErrNoSuchServer  = "402"
	ErrNoSuchChannel = "403"
	ErrCannotSendToChan = "404"

	ErrNoRecipient      = "411"
	ErrNoTextToSend     = "412"

	ErrUnknownCommand = "421"

	ErrNoNicknameGiven  = "431"
	ErrErroneusNickname = "432"
	ErrNicknameInUse    = "433"

	ErrUserNotInChannel = "441"
	ErrNotOnChannel     = "442"

	ErrNotRegistered = "451"

	ErrNeedMoreParams  = "461"
	ErrAlreadyRegistered = "462"

	ErrPasswdMismatch = "464"
	ErrYoureBannedCreep = "465"

	ErrChannelIsFull  = "471"
	ErrUnknownMode    = "472"
	ErrInviteOnlyChan = "473"
	ErrBannedFromChan = "474"
	ErrBadChannelKey  = "475"
	ErrBadChanMask    = "476"
	ErrNoChanModes    = "477"
	ErrBanListFull    = "478"

	ErrNoPrivileges     = "481"
	ErrChanOpPrivsNeeded = "482"

	ErrUModeUnknownFlag = "501"
	ErrUsersDontMatchMode = "502"
)
