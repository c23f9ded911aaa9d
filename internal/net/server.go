package net

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bulletbrawl/arena/internal/config"
	"github.com/bulletbrawl/arena/internal/world"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // local spectators only
	},
}

// Server accepts websocket spectators and fans snapshots out to them.
// New/dead sessions reach the simulation loop through channels; the
// session table itself is only touched from Publish.
type Server struct {
	listener net.Listener
	http     *http.Server
	nextID   atomic.Uint64
	newConns chan *Session
	deadCh   chan uint64
	sessions map[uint64]*Session
	outSize  int
	timeout  time.Duration
	log      *zap.Logger
}

func NewServer(cfg config.SpectatorConfig, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: ln,
		newConns: make(chan *Session, 64),
		deadCh:   make(chan uint64, 64),
		sessions: make(map[uint64]*Session),
		outSize:  cfg.OutQueueSize,
		timeout:  cfg.WriteTimeout,
		log:      log,
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleUpgrade)
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return s, nil
}

// Serve runs in its own goroutine until Shutdown.
func (s *Server) Serve() {
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("spectator server stopped", zap.Error(err))
	}
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	id := s.nextID.Add(1)
	sess := NewSession(conn, id, s.outSize, s.timeout, s.log)
	sess.onDead = s.NotifyDead
	sess.Start()

	s.log.Info("spectator connected", zap.Uint64("session", id), zap.String("ip", sess.IP))

	select {
	case s.newConns <- sess:
	default:
		s.log.Warn("connection queue full, rejecting spectator")
		sess.Close()
	}
}

// NotifyDead reports a dead session ID to the simulation loop.
func (s *Server) NotifyDead(sessionID uint64) {
	select {
	case s.deadCh <- sessionID:
	default:
	}
}

// Publish encodes the snapshot once and queues it on every live session.
// Call it only from the simulation loop.
func (s *Server) Publish(snap world.Snapshot) {
	s.drain()
	if len(s.sessions) == 0 {
		return
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		s.log.Error("snapshot encode failed", zap.Error(err))
		return
	}
	for _, sess := range s.sessions {
		sess.Send(data)
	}
}

func (s *Server) drain() {
	for {
		select {
		case sess := <-s.newConns:
			if !sess.IsClosed() {
				s.sessions[sess.ID] = sess
			}
		case id := <-s.deadCh:
			if _, ok := s.sessions[id]; ok {
				delete(s.sessions, id)
				s.log.Info("spectator disconnected", zap.Uint64("session", id))
			}
		default:
			return
		}
	}
}

// SessionCount is the number of spectators registered as of the last
// Publish.
func (s *Server) SessionCount() int {
	return len(s.sessions)
}

// Shutdown stops accepting spectators and closes the live ones.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.drain()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.drain()
	return err
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
