package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/scpi-protocol/scpi-go/pkg/log"
)

// DefaultPort is the conventional raw-socket SCPI port.
const DefaultPort = 5025

// ServerConfig configures a raw-socket SCPI server.
type ServerConfig struct {
	// Address to listen on (e.g. ":5025" or "127.0.0.1:5025").
	Address string

	// MaxLineLength bounds incoming lines (default: DefaultMaxLineLength).
	MaxLineLength int

	// Logger for protocol logging (optional).
	Logger log.Logger

	// OnConnect is called when a new connection is established.
	OnConnect func(conn *ServerConn)

	// OnLine is called for every received program message.
	OnLine func(conn *ServerConn, line string)

	// OnDisconnect is called when a connection is closed.
	OnDisconnect func(conn *ServerConn)

	// OnError is called when a connection fails.
	OnError func(conn *ServerConn, err error)
}

// ServerConn is one accepted instrument connection.
type ServerConn struct {
	// ID uniquely identifies the connection (UUID).
	ID string

	conn net.Conn
	line *LineConn

	closeOnce sync.Once
}

// RemoteAddr returns the peer address.
func (c *ServerConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// WriteLine sends one response line to the peer.
func (c *ServerConn) WriteLine(line string) error {
	return c.line.WriteLine(line)
}

// Close closes the connection. Safe to call multiple times.
func (c *ServerConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

// Server accepts raw-socket SCPI connections and feeds received lines
// to the configured callback, one goroutine per connection.
type Server struct {
	config ServerConfig
	logger log.Logger

	listener net.Listener

	// Active connections
	conns   map[*ServerConn]struct{}
	connsMu sync.Mutex

	// State
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a new SCPI line server.
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		config.Address = fmt.Sprintf(":%d", DefaultPort)
	}
	if config.MaxLineLength == 0 {
		config.MaxLineLength = DefaultMaxLineLength
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Server{
		config: config,
		logger: logger,
		conns:  make(map[*ServerConn]struct{}),
	}
}

// Start starts the server and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return errors.New("server already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops the server and closes all connections.
func (s *Server) Stop() error {
	if !s.running.Load() {
		return nil
	}
	s.running.Store(false)
	s.cancel()

	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.connsMu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.connsMu.Unlock()

	s.wg.Wait()
	return nil
}

// acceptLoop accepts connections until the server stops.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() || s.ctx.Err() != nil {
				return
			}
			continue
		}

		sc := &ServerConn{
			ID:   uuid.NewString(),
			conn: conn,
			line: NewLineConn(conn),
		}
		sc.line.SetLogger(s.logger, sc.ID)

		s.connsMu.Lock()
		s.conns[sc] = struct{}{}
		s.connsMu.Unlock()

		s.logStateChange(sc, "DISCONNECTED", "CONNECTED")

		s.wg.Add(1)
		go s.serveConn(sc)
	}
}

// serveConn reads lines from one connection until it closes.
func (s *Server) serveConn(sc *ServerConn) {
	defer s.wg.Done()
	defer func() {
		_ = sc.Close()

		s.connsMu.Lock()
		delete(s.conns, sc)
		s.connsMu.Unlock()

		s.logStateChange(sc, "CONNECTED", "DISCONNECTED")
		if s.config.OnDisconnect != nil {
			s.config.OnDisconnect(sc)
		}
	}()

	if s.config.OnConnect != nil {
		s.config.OnConnect(sc)
	}

	for {
		line, err := sc.line.ReadLine()
		if err != nil {
			if err != io.EOF && s.ctx.Err() == nil && s.config.OnError != nil {
				s.config.OnError(sc, err)
			}
			return
		}
		if s.config.OnLine != nil {
			s.config.OnLine(sc, line)
		}
	}
}

// logStateChange emits a connection state transition event.
func (s *Server) logStateChange(sc *ServerConn, from, to string) {
	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: sc.ID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		RemoteAddr:   sc.RemoteAddr(),
		StateChange: &log.StateChangeEvent{
			From: from,
			To:   to,
		},
	})
}
