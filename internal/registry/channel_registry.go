package registry

import (
	"sync"

	"metallircd/internal/ident"
	"metallircd/internal/model"
)

// ChannelRegistry is the folded-name -> channel index.
type ChannelRegistry struct {
	mu   sync.RWMutex
	byName map[string]*model.Channel
}

// NewChannelRegistry returns an empty registry.
func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{byName: make(map[string]*model.Channel)}
}

// Has reports whether a channel with the given (unfolded) name exists.
func (r *ChannelRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[ident.Fold(name)]
	return ok
}

// Get returns the channel for name, if it exists.
func (r *ChannelRegistry) Get(name string) (*model.Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[ident.Fold(name)]
	return c, ok
}

// GetOrCreate returns the existing channel for name, or lazily creates
// and registers a new one preserving name's original case.
func (r *ChannelRegistry) GetOrCreate(name string) *model.Channel {
	folded := ident.Fold(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byName[folded]; ok {
		return c
	}
	c := model.NewChannel(name)
	r.byName[folded] = c
	return c
}

// DestroyIfEmpty removes name's channel if it currently has zero
// members. Returns true if it was removed.
func (r *ChannelRegistry) DestroyIfEmpty(name string) bool {
	folded := ident.Fold(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byName[folded]
	if !ok {
		return false
	}
	if c.MemberCount() != 0 {
		return false
	}
	delete(r.byName, folded)
	return true
}

// ForEach calls fn once per live channel.
func (r *ChannelRegistry) ForEach(fn func(*model.Channel)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byName {
		fn(c)
	}
}

// ForEachMatching calls fn once per channel whose name matches mask.
func (r *ChannelRegistry) ForEachMatching(mask string, fn func(*model.Channel)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.byName {
		if ident.MatchMask(c.Name, mask) {
			fn(c)
		}
	}
}
