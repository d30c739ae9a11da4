// Package model holds the User, Channel, and Membership records and the
// ownership relations between them described in the data model: a user
// is authoritatively owned by the user registry; a channel by the
// channel registry; a membership by the user's channel map, with the
// channel holding only a non-owning back-reference that may go stale
// until a cleanup pass purges it.
package model

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"metallircd/internal/ircmsg"
	"metallircd/internal/modeset"
)

// User is a connected client. Every mutable field not explicitly guarded
// below is only ever touched by the worker currently holding the user's
// identifier (see internal/ircd), per the "at most one worker owns an
// identifier at a time" rule; the registry's own lock protects the
// identity/index fields (ID, Nick) during rename.
type User struct {
	ID uuid.UUID

	mu       sync.RWMutex
	nick     string
	username string
	realname string
	hostname string
	modes    modeset.Set
	awayMsg  string

	// Channels maps a folded channel name to this user's membership in
	// it. This map is the authoritative owner of every Membership value
	// it holds.
	Channels map[string]*Membership

	// Outbound is the FIFO multi-producer/single-consumer queue of
	// messages waiting to be written to this user's socket. Only the
	// worker currently holding ID drains it.
	Outbound chan *ircmsg.Message

	// socketMu guards the underlying connection; only the worker
	// currently holding this user's identifier may lock it, per the
	// lock-ordering rule (registries -> per-channel -> per-user-socket).
	socketMu sync.Mutex

	dead bool

	LastActivity time.Time
	LastMessage  time.Time
}

// NewUser allocates a fresh, not-yet-inserted user record.
func NewUser(nick, username, realname, hostname string) *User {
	return &User{
		ID:       uuid.New(),
		nick:     nick,
		username: username,
		realname: realname,
		hostname: hostname,
		Channels: make(map[string]*Membership),
		Outbound: make(chan *ircmsg.Message, 256),
	}
}

// Nick returns the current nickname. Safe for concurrent readers; only
// the registry's rename operation mutates it, under the registry's
// exclusive section.
func (u *User) Nick() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.nick
}

// SetNick is called only by the registry's rename operation, which
// already holds its own exclusive section.
func (u *User) SetNick(nick string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.nick = nick
}

func (u *User) Username() string { return u.username }
func (u *User) Realname() string { return u.realname }
func (u *User) Hostname() string { return u.hostname }

// Fullname renders "nick!username@hostname", used as the message prefix
// on user-originated protocol lines.
func (u *User) Fullname() string {
	return u.Nick() + "!" + u.username + "@" + u.hostname
}

// Modes returns a snapshot of the user's mode set.
func (u *User) Modes() modeset.Set {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.modes
}

// SetModes replaces the user's mode set.
func (u *User) SetModes(s modeset.Set) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.modes = s
}

// AwayMessage returns the stored AWAY text, and whether the user is away
// at all (equivalent to the 'a' user mode being set).
func (u *User) AwayMessage() (string, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.awayMsg, u.modes.Contains('a')
}

// SetAway stores msg and sets the 'a' mode; an empty msg clears it.
func (u *User) SetAway(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.awayMsg = msg
	if msg == "" {
		u.modes = u.modes.Remove('a')
	} else {
		u.modes = u.modes.Insert('a')
	}
}

// IsOperator reports whether the user holds the network operator flag.
func (u *User) IsOperator() bool {
	return u.Modes().Contains('o')
}

// IsInvisible reports whether the user holds the invisible flag.
func (u *User) IsInvisible() bool {
	return u.Modes().Contains('i')
}

// MarkDead flags the user as disconnected; the next recycler pass will
// tear the record down.
func (u *User) MarkDead() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dead = true
}

// Dead reports whether MarkDead has been called.
func (u *User) Dead() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.dead
}

// Enqueue pushes msg onto the user's outbound queue without blocking
// the caller on socket I/O. A full queue indicates a stuck or abusive
// client and the message is dropped rather than blocking the sender
// (the sender might be a different worker entirely); this mirrors the
// teacher's maybeQueueMessage pattern of flagging overflow instead of
// blocking.
func (u *User) Enqueue(msg *ircmsg.Message) bool {
	select {
	case u.Outbound <- msg:
		return true
	default:
		return false
	}
}

// LockSocket/UnlockSocket bracket the section of code where the owning
// worker writes to this user's actual net.Conn.
func (u *User) LockSocket()   { u.socketMu.Lock() }
func (u *User) UnlockSocket() { u.socketMu.Unlock() }
