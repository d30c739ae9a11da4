package model

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"metallircd/internal/ident"
	"metallircd/internal/modeset"
)

// Membership is the (user, channel) relation. It owns the membership
// mode set (voice/op). The owning user's Channels map is its
// authoritative handle; Channel.members holds only a non-owning
// back-reference, which may go stale ("ghost") if the user is destroyed
// without first removing itself from the channel.
type Membership struct {
	User    *User
	Channel *Channel

	mu    sync.RWMutex
	modes modeset.Set
}

func newMembership(u *User, c *Channel) *Membership {
	return &Membership{User: u, Channel: c}
}

// Modes returns a snapshot of the membership's mode set.
func (m *Membership) Modes() modeset.Set {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes
}

// SetModes replaces the membership's mode set.
func (m *Membership) SetModes(s modeset.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes = s
}

// Channel is a named room. Name is the canonical (originally-cased)
// name; lookups elsewhere use the folded form as the map key.
type Channel struct {
	Name         string
	CreationTime time.Time

	mu      sync.RWMutex
	topic   string
	modes   modeset.Set
	members map[uuid.UUID]*Membership
}

// NewChannel creates an empty channel record, not yet inserted into any
// registry.
func NewChannel(name string) *Channel {
	return &Channel{
		Name:         name,
		CreationTime: time.Now(),
		members:      make(map[uuid.UUID]*Membership),
	}
}

// Topic returns the current topic string.
func (c *Channel) Topic() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topic
}

// SetTopic replaces the topic string.
func (c *Channel) SetTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = topic
}

// Modes returns a snapshot of the channel's mode set.
func (c *Channel) Modes() modeset.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modes
}

// SetModes replaces the channel's mode set.
func (c *Channel) SetModes(s modeset.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modes = s
}

// Join creates a Membership for u, registers it on both the user and
// (non-owning) on the channel, and returns it. Idempotent: joining a
// channel the user is already on returns the existing membership.
func (c *Channel) Join(u *User) *Membership {
	folded := ident.Fold(c.Name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := u.Channels[folded]; ok {
		return existing
	}
	m := newMembership(u, c)
	c.members[u.ID] = m
	u.Channels[folded] = m
	return m
}

// Part removes u's membership from the channel (and from the user's own
// map, since Part is the one operation that must keep both sides in
// sync atomically). Returns true if u was a member.
func (c *Channel) Part(u *User) bool {
	folded := ident.Fold(c.Name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.members[u.ID]; !ok {
		return false
	}
	delete(c.members, u.ID)
	delete(u.Channels, folded)
	return true
}

// MemberCount returns the number of memberships held, ghost entries
// included: they are not purged here; call Cleanup first if staleness
// matters.
func (c *Channel) MemberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

// Has reports whether u currently holds a membership.
func (c *Channel) Has(u *User) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.members[u.ID]
	return ok
}

// MembershipOf returns u's membership in this channel, if any.
func (c *Channel) MembershipOf(u *User) (*Membership, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.members[u.ID]
	return m, ok
}

// ForEachMember calls fn once per membership held (ghost entries not yet
// purged by Cleanup included). fn must not mutate
// the channel; the read lock is held for the duration of the call.
func (c *Channel) ForEachMember(fn func(*Membership)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.members {
		fn(m)
	}
}

// Cleanup purges any membership whose user the caller reports as no
// longer live (isLive returns false), standing in for the Weak::upgrade
// failure check the original representation used. Returns true if the
// channel is now empty.
func (c *Channel) Cleanup(isLive func(uuid.UUID) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.members {
		if !isLive(id) {
			delete(c.members, id)
		}
	}
	return len(c.members) == 0
}
