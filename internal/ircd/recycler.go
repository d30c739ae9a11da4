package ircd

import (
	"time"

	"github.com/google/uuid"

	"metallircd/internal/handlers"
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// recyclerIdle bounds how long the recycler blocks on its incoming
// channel before re-checking shutdown, per spec section 5.
const recyclerIdle = 50 * time.Millisecond

// runRecycler is the single task with exclusive responsibility for
// nick renames and user/channel teardown, per spec section 4.8. It
// exits only after global shutdown has both been requested and every
// live user has been torn down.
func (s *Server) runRecycler() {
	defer s.wg.Done()
	for {
		select {
		case req := <-s.recycle:
			s.applyRecycle(req)
		case <-time.After(recyclerIdle):
			select {
			case <-s.shutdownCh:
				if s.drainAndShutdown() {
					return
				}
			default:
			}
		}
	}
}

func (s *Server) applyRecycle(req recycleRequest) {
	switch req.action.Kind() {
	case handlers.ChangeNick:
		s.applyChangeNick(req.id, req.action.NewNick())
	case handlers.Zombify:
		s.teardown(req.id)
	}
}

func (s *Server) applyChangeNick(id uuid.UUID, newNick string) {
	user, ok := s.users.ByID(id)
	if !ok {
		return
	}
	oldFullname := user.Fullname()
	if !s.users.Rename(id, newNick) {
		handlers.Numeric(s.hctx, user, numeric.ErrNicknameInUse, []string{newNick}, "Nickname is already in use")
		return
	}
	notified := map[uuid.UUID]bool{id: true}
	nickMsg := &ircmsg.Message{Prefix: oldFullname, Command: "NICK", Args: []string{newNick}}
	for _, m := range snapshotChannels(user) {
		m.Channel.ForEachMember(func(peer *model.Membership) {
			if notified[peer.User.ID] {
				return
			}
			notified[peer.User.ID] = true
			peer.User.Enqueue(nickMsg)
		})
	}
	user.Enqueue(nickMsg)
}

// teardown destroys a zombified user: removes it from the registry,
// purges the ghost membership it leaves in every channel it belonged
// to, and destroys any channel that becomes empty as a result.
func (s *Server) teardown(id uuid.UUID) {
	user, ok := s.users.ByID(id)
	if !ok {
		return
	}
	user.MarkDead()
	channelNames := make([]string, 0, len(user.Channels))
	for _, m := range user.Channels {
		channelNames = append(channelNames, m.Channel.Name)
	}
	s.users.Destroy(id)
	for _, name := range channelNames {
		if c, ok := s.channels.Get(name); ok {
			c.Cleanup(s.users.IsLive)
			s.channels.DestroyIfEmpty(name)
		}
	}
}

// drainAndShutdown forcibly disconnects every live user with a shutdown
// NOTICE, drains any requests still pending on the recycle channel, and
// reports whether the recycler may now exit.
func (s *Server) drainAndShutdown() bool {
	for {
		select {
		case req := <-s.recycle:
			s.applyRecycle(req)
		default:
			goto done
		}
	}
done:
	var live []*model.User
	s.users.ForEach(func(u *model.User) {
		live = append(live, u)
	})
	for _, u := range live {
		notice := &ircmsg.Message{Prefix: s.hctx.ServerName, Command: "NOTICE", Args: []string{u.Nick()}, Trailing: "Server shutting down.", HasTrailing: true}
		u.Enqueue(notice)
		s.teardown(u.ID)
	}
	return true
}

func snapshotChannels(u *model.User) []*model.Membership {
	out := make([]*model.Membership, 0, len(u.Channels))
	for _, m := range u.Channels {
		out = append(out, m)
	}
	return out
}
