// Package ircd wires the codec, registries, and handler pipeline into a
// running server: it owns the shared state, accepts TCP connections,
// drives each connection's negotiation and steady-state loop, and runs
// the recycler that alone may mutate the registries structurally.
package ircd

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"metallircd/internal/config"
	"metallircd/internal/handlers"
	"metallircd/internal/logging"
	"metallircd/internal/registry"
)

// recycleRequest is what a connection hands to the recycler after a
// command handler returns a non-Nothing action, per spec section 4.8.
type recycleRequest struct {
	id     uuid.UUID
	action handlers.RecyclingAction
}

// Server owns every piece of shared state and the goroutines that act
// on it: one acceptor, one connection loop per client (the cooperative-
// task alternative to a work-stealing pool sanctioned by spec section 9),
// one recycler, and the logger's own internal drain goroutine.
type Server struct {
	cfg *config.Config
	log *logging.Sink

	users    *registry.UserRegistry
	channels *registry.ChannelRegistry
	pipeline *handlers.Pipeline
	hctx     *handlers.Context

	listener   net.Listener
	recycle    chan recycleRequest
	commandSem chan struct{}

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	wg           sync.WaitGroup
}

// New builds a Server from a validated configuration and an already
// opened log sink. It does not bind a socket yet; call Run for that.
func New(cfg *config.Config, log *logging.Sink) *Server {
	s := &Server{
		cfg:        cfg,
		log:        log,
		users:      registry.NewUserRegistry(),
		channels:   registry.NewChannelRegistry(),
		recycle:    make(chan recycleRequest, 256),
		commandSem: make(chan struct{}, cfg.EffectiveWorkers()),
		shutdownCh: make(chan struct{}),
	}
	s.pipeline = buildPipeline()

	opers := operCredentials(cfg)

	s.hctx = &handlers.Context{
		Users:           s.users,
		Channels:        s.channels,
		ServerName:      cfg.Metallircd.ServerName,
		Version:         "metallircd-0",
		Created:         time.Now(),
		MOTD:            motdLines(cfg),
		Opers:           opers,
		Log:             log,
		RequestShutdown: s.RequestShutdown,
		Pipeline:        s.pipeline,
	}
	return s
}

// operCredentials reads operator name/password pairs out of any
// [module.*] table that carries both a "username" and a "password" key
// in its opaque extras — the core's config schema has no dedicated
// operators section (see SPEC_FULL.md), so credentials ride along as an
// ordinary module bundle's configuration.
func operCredentials(cfg *config.Config) map[string]string {
	opers := make(map[string]string)
	for _, m := range cfg.Module {
		username, ok := m.Extra["username"].(string)
		if !ok {
			continue
		}
		password, ok := m.Extra["password"].(string)
		if !ok {
			continue
		}
		opers[username] = password
	}
	return opers
}

// motdLines pulls free-form MOTD text out of an optional [module.motd]
// table's "lines" key, keeping the core's config schema exactly as
// documented (no dedicated motd key) while still giving operators a way
// to set one.
func motdLines(cfg *config.Config) []string {
	m, ok := cfg.Module["motd"]
	if !ok {
		return nil
	}
	raw, ok := m.Extra["lines"].([]interface{})
	if !ok {
		return nil
	}
	lines := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			lines = append(lines, s)
		}
	}
	return lines
}

// Run binds the configured address and blocks, accepting connections and
// running the recycler, until RequestShutdown is called (or Accept fails
// after shutdown has been requested). It returns nil on a clean shutdown.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Metallircd.Address, strconv.Itoa(s.cfg.Metallircd.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Infof("listening on %s", addr)

	s.wg.Add(1)
	go s.runRecycler()

	for {
		c, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shutdownCh:
				s.wg.Wait()
				s.log.Infof("server shutdown complete")
				return nil
			default:
				s.log.Warningf("accept error: %s", err)
				continue
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(c)
		}()
	}
}

// RequestShutdown is DIE's side effect and the CLI's signal-handling
// hook: it is idempotent, closes the listening socket so the accept loop
// exits, and tells the recycler to tear down every remaining connection.
func (s *Server) RequestShutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}
