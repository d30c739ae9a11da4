package registry

import (
	"github.com/google/uuid"

	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
)

// SendTo enqueues msg on every live member of c's outbound queue,
// excluding the user identified by except if given. Enqueue is
// non-blocking per model.User.Enqueue; a full queue silently drops the
// message for that one recipient rather than stalling the broadcast.
func SendTo(c *model.Channel, msg *ircmsg.Message, except *uuid.UUID) {
	c.ForEachMember(func(m *model.Membership) {
		if except != nil && m.User.ID == *except {
			return
		}
		m.User.Enqueue(msg)
	})
}
