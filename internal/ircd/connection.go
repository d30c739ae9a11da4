package ircd

import (
	"bytes"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"metallircd/internal/handlers"
	"metallircd/internal/ident"
	"metallircd/internal/ircmsg"
	"metallircd/internal/model"
	"metallircd/internal/numeric"
)

// readTimeout bounds each socket read so a connection's loop can notice
// global shutdown at its head instead of blocking forever on an idle
// client, per spec section 5.
const readTimeout = 50 * time.Millisecond

// lineReader accumulates raw bytes across repeated deadline-bounded
// reads and splits them into CRLF-terminated lines. A bufio.Reader's
// ReadString would silently discard bytes already consumed from the
// socket when a deadline trips mid-line; doing the buffering by hand
// keeps a partial line intact across polls.
type lineReader struct {
	conn net.Conn
	buf  bytes.Buffer
	tmp  [4096]byte
}

// next returns the next full line (CRLF/LF stripped) if one is already
// buffered or arrives within readTimeout; ("", nil, false) on a plain
// timeout with no full line yet; and a non-nil error only on a real
// socket failure or EOF.
func (l *lineReader) next() (string, error, bool) {
	if line, ok := l.takeLine(); ok {
		return line, nil, true
	}
	_ = l.conn.SetReadDeadline(time.Now().Add(readTimeout))
	n, err := l.conn.Read(l.tmp[:])
	if n > 0 {
		l.buf.Write(l.tmp[:n])
	}
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			if line, ok := l.takeLine(); ok {
				return line, nil, true
			}
			return "", nil, false
		}
		return "", err, false
	}
	if line, ok := l.takeLine(); ok {
		return line, nil, true
	}
	return "", nil, false
}

func (l *lineReader) takeLine() (string, bool) {
	b := l.buf.Bytes()
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return "", false
	}
	line := string(b[:idx])
	l.buf.Next(idx + 1)
	return strings.TrimRight(line, "\r"), true
}

// negotiating collects the NICK/USER fields a connection offers before
// it has a registry-backed user record.
type negotiating struct {
	nick     string
	username string
	realname string
}

// handleConnection runs a connection's entire lifecycle: registration
// negotiation, then steady-state command dispatch, until the socket
// fails, the user is zombified, or the server shuts down.
func (s *Server) handleConnection(c net.Conn) {
	defer c.Close()

	host, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		host = c.RemoteAddr().String()
	}
	s.log.Debugf("accepted connection from %s", host)

	reader := &lineReader{conn: c}
	neg := negotiating{}

	var user *model.User
	for user == nil {
		line, err, ok := reader.next()
		if err != nil {
			return
		}
		if !ok {
			select {
			case <-s.shutdownCh:
				return
			default:
			}
			continue
		}
		if line == "" {
			continue
		}
		msg, perr := ircmsg.Parse(line)
		if perr != nil {
			continue
		}
		switch msg.Command {
		case "NICK":
			if len(msg.Args) < 1 {
				s.negotiatingNumeric(c, "*", numeric.ErrNoNicknameGiven, nil, "No nickname given")
				continue
			}
			nick := msg.Args[0]
			if !ident.ValidNick(nick) {
				s.negotiatingNumeric(c, "*", numeric.ErrErroneusNickname, []string{nick}, "Erroneous nickname")
				continue
			}
			if _, taken := s.users.ByNick(nick); taken {
				s.negotiatingNumeric(c, "*", numeric.ErrNicknameInUse, []string{nick}, "Nickname is already in use")
				continue
			}
			neg.nick = nick
		case "USER":
			if neg.nick == "" {
				continue
			}
			// USER username hostname servername :realname - the trailing
			// realname leaves only 3 middle args, so the 4th is only
			// required when the client omitted the trailing form.
			if len(msg.Args) < 3 || (!msg.HasTrailing && len(msg.Args) < 4) {
				s.negotiatingNumeric(c, "*", numeric.ErrNeedMoreParams, []string{"USER"}, "Not enough parameters")
				continue
			}
			neg.username = msg.Args[0]
			if msg.HasTrailing {
				neg.realname = msg.Trailing
			} else {
				neg.realname = msg.Args[3]
			}

			u := model.NewUser(neg.nick, neg.username, neg.realname, host)
			if err := s.users.Insert(u); err != nil {
				s.negotiatingNumeric(c, "*", numeric.ErrNicknameInUse, []string{neg.nick}, "Nickname is already in use")
				neg.nick = ""
				neg.username = ""
				neg.realname = ""
				continue
			}
			user = u
		default:
			// silently ignored during negotiation, per section 4.7.
		}
	}

	s.log.Infof("registered %s!%s@%s", user.Nick(), user.Username(), host)
	s.sendWelcome(user)

	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go s.writeLoop(c, user, stop, writerDone)

	s.readLoop(c, reader, user)

	close(stop)
	<-writerDone
}

// readLoop is the steady-state half of a connection's lifecycle: parse
// one line, dispatch it through the pipeline, apply any recycling
// action, repeat until the socket dies or the user is zombified.
// Dispatch itself is bounded by s.commandSem, sized from
// metallircd.workers, so the cooperative per-connection goroutines still
// cap how many command handlers run concurrently.
func (s *Server) readLoop(c net.Conn, r *lineReader, user *model.User) {
	for {
		select {
		case <-s.shutdownCh:
			return
		default:
		}

		line, err, ok := r.next()
		if err != nil {
			handlers.FanOutQuit(s.hctx, user, "Connection closed.")
			s.recycle <- recycleRequest{id: user.ID, action: handlers.ZombifyAction}
			return
		}
		if !ok || line == "" {
			continue
		}
		msg, perr := ircmsg.Parse(line)
		if perr != nil {
			continue
		}

		user.LastActivity = time.Now()

		s.commandSem <- struct{}{}
		out := s.pipeline.DispatchCommand(s.hctx, user, msg)
		<-s.commandSem
		if !out.Matched {
			handlers.Numeric(s.hctx, user, numeric.ErrUnknownCommand, []string{msg.Command}, "Unknown command")
			continue
		}
		if out.Action.Kind() == handlers.Nothing {
			continue
		}
		s.recycle <- recycleRequest{id: user.ID, action: out.Action}
		if out.Action.Kind() == handlers.Zombify {
			return
		}
	}
}

// writeLoop drains user's outbound queue to the socket until stop is
// closed (by the connection's own read-side goroutine, the sole owner
// of that channel) or a write fails. On stop it flushes whatever is
// already queued — e.g. a shutdown NOTICE the recycler just enqueued —
// before returning, rather than closing the shared Outbound channel
// itself (which other goroutines may still be sending to).
func (s *Server) writeLoop(c net.Conn, user *model.User, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	user.LockSocket()
	defer user.UnlockSocket()
	for {
		select {
		case msg := <-user.Outbound:
			if !s.writeOne(c, msg) {
				return
			}
		case <-stop:
			for {
				select {
				case msg := <-user.Outbound:
					if !s.writeOne(c, msg) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (s *Server) writeOne(c net.Conn, msg *ircmsg.Message) bool {
	line := ircmsg.Serialise(msg) + "\r\n"
	_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
	_, err := io.WriteString(c, line)
	return err == nil
}

func (s *Server) negotiatingNumeric(c net.Conn, placeholder, code string, args []string, trailing string) {
	handlers.NumericRaw(s.hctx, func(msg *ircmsg.Message) {
		line := ircmsg.Serialise(msg) + "\r\n"
		_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		_, _ = io.WriteString(c, line)
	}, placeholder, code, args, trailing)
}

func (s *Server) sendWelcome(user *model.User) {
	h := s.hctx
	handlers.Numeric(h, user, numeric.RplWelcome, nil, "Welcome to the Internet Relay Network "+user.Fullname())
	handlers.Numeric(h, user, numeric.RplYourHost, nil, "Your host is "+h.ServerName+", running version "+h.Version)
	handlers.Numeric(h, user, numeric.RplCreated, nil, "This server was created "+h.Created.Format(time.RFC1123))
	handlers.Numeric(h, user, numeric.RplMyInfo, []string{h.ServerName, h.Version, "io", "ntsimov"}, "")
	handlers.Numeric(h, user, numeric.RplISupport, []string{
		"CHANTYPES=#",
		"NICKLEN=" + strconv.Itoa(ident.MaxNickLength()),
		"CHANNELLEN=" + strconv.Itoa(ident.MaxChannelLength()),
		"TOPICLEN=" + strconv.Itoa(ident.MaxTopicLength()),
		"PREFIX=(ov)@+",
	}, "are supported by this server")
}
