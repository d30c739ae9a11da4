// Package registry implements the user and channel registries: the
// Uuid/name indices, under a single exclusive section per mutating
// operation, that the recycler and command handlers use to find and
// mutate shared state.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"metallircd/internal/ident"
	"metallircd/internal/model"
)

// AlreadyTakenError is returned by Insert when the folded nickname is
// already present.
type AlreadyTakenError struct {
	Nick string
}

func (e *AlreadyTakenError) Error() string {
	return "nickname already in use: " + e.Nick
}

// UserRegistry is the Uuid <-> nickname index. Reads (By*, ForEach,
// MatchingMask) take the read side of the lock; Insert/Rename/Destroy
// take the write side, per section 5's lock-ordering rule.
type UserRegistry struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*model.User
	byNick map[string]uuid.UUID
}

// NewUserRegistry returns an empty registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		byID:   make(map[uuid.UUID]*model.User),
		byNick: make(map[string]uuid.UUID),
	}
}

// Insert adds u, keyed by its current (already-validated) nickname.
// Returns AlreadyTakenError if the folded nick is taken.
func (r *UserRegistry) Insert(u *model.User) error {
	folded := ident.Fold(u.Nick())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byNick[folded]; taken {
		return &AlreadyTakenError{Nick: u.Nick()}
	}
	r.byNick[folded] = u.ID
	r.byID[u.ID] = u
	return nil
}

// ByID returns the user with the given identifier, if live.
func (r *UserRegistry) ByID(id uuid.UUID) (*model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	return u, ok
}

// ByNick looks up a user by nickname (folded internally).
func (r *UserRegistry) ByNick(nick string) (*model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byNick[ident.Fold(nick)]
	if !ok {
		return nil, false
	}
	u, ok := r.byID[id]
	return u, ok
}

// IDOfNick returns just the identifier for a nick, if present.
func (r *UserRegistry) IDOfNick(nick string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byNick[ident.Fold(nick)]
	return id, ok
}

// Rename atomically moves id's index entry from its old folded nick to
// newNick's folded form, and updates the user's own Nick field. Returns
// false (no change made) if newNick's folded form is already taken by a
// different user.
func (r *UserRegistry) Rename(id uuid.UUID, newNick string) bool {
	foldedNew := ident.Fold(newNick)
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false
	}
	if existing, taken := r.byNick[foldedNew]; taken && existing != id {
		return false
	}
	delete(r.byNick, ident.Fold(u.Nick()))
	r.byNick[foldedNew] = id
	u.SetNick(newNick)
	return true
}

// Destroy removes id from the registry. The caller must already have
// disconnected the user and fanned out any QUIT notification.
func (r *UserRegistry) Destroy(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byNick, ident.Fold(u.Nick()))
	delete(r.byID, id)
}

// IsLive reports whether id is currently registered and not marked
// dead; used by Channel.Cleanup to decide whether a membership
// back-reference is a ghost.
func (r *UserRegistry) IsLive(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	return ok && !u.Dead()
}

// ForEach calls fn once per live user. fn must not mutate the registry.
func (r *UserRegistry) ForEach(fn func(*model.User)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		fn(u)
	}
}

// Field selects which User attribute MatchingMask compares against.
type Field int

const (
	FieldNick Field = iota
	FieldHost
	FieldFullname
)

// MatchingMask returns every live user whose selected field matches the
// glob mask.
func (r *UserRegistry) MatchingMask(field Field, mask string) []*model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.User
	for _, u := range r.byID {
		var subject string
		switch field {
		case FieldHost:
			subject = u.Hostname()
		case FieldFullname:
			subject = u.Fullname()
		default:
			subject = u.Nick()
		}
		if ident.MatchMask(subject, mask) {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of registered users.
func (r *UserRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
