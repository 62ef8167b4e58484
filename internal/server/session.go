package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
)

// kickFlushTimeout bounds how long the writer may spend flushing the final
// packets of a kicked connection.
const kickFlushTimeout = 5 * time.Second

type sessionState uint8

const (
	stateConnecting sessionState = iota
	stateUnapproved
	stateApproved
	stateDisconnected
)

func (s sessionState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateUnapproved:
		return "unapproved"
	case stateApproved:
		return "approved"
	default:
		return "disconnected"
	}
}

// session is one client connection. conn, out and connLogger belong to the
// reader and writer goroutines and never change after newSession; every
// other field is owned by the mutator.
type session struct {
	id         string
	conn       net.Conn
	out        chan protocol.Packet
	connLogger *logger.Logger
	logger     *logger.Logger

	state    sessionState
	username string
	rejected int
	slow     bool

	closeOnce sync.Once
}

func newSession(id string, conn net.Conn, queueSize int, log *logger.Logger) *session {
	sessionLog := log.ForSession(id, conn.RemoteAddr().String())
	return &session{
		id:         id,
		conn:       conn,
		out:        make(chan protocol.Packet, queueSize),
		connLogger: sessionLog,
		logger:     sessionLog,
	}
}

// loggedIn reports whether the session holds a username.
func (c *session) loggedIn() bool {
	return c.state == stateUnapproved || c.state == stateApproved
}

// enqueue queues p without blocking. It reports false when the queue is full.
func (c *session) enqueue(p protocol.Packet) bool {
	select {
	case c.out <- p:
		return true
	default:
		return false
	}
}

// closeOutbound ends the writer once the queued packets are flushed. Only the
// mutator calls it.
func (c *session) closeOutbound() {
	c.closeOnce.Do(func() {
		close(c.out)
		_ = c.conn.SetWriteDeadline(time.Now().Add(kickFlushTimeout))
	})
}

// readLoop decodes client packets and hands them to the server until the
// connection fails.
func (s *MappingServer) readLoop(c *session) {
	defer s.conns.Done()

	src := codec.NewReader(bufio.NewReader(c.conn))
	for {
		p, err := s.registry.Read(src, protocol.ClientToServer)
		if err != nil {
			s.onReadError(c, err)
			return
		}

		if !s.dispatch(c, p) {
			return
		}
	}
}

func (s *MappingServer) onReadError(c *session, err error) {
	var reason string
	switch {
	case errors.Is(err, io.EOF):
		reason = protocol.ReasonDisconnected
	case errors.Is(err, net.ErrClosed):
		// closed by a kick, already cleaned up
		return
	case errors.Is(err, protocol.ErrProtocolMismatch):
		reason = protocol.ReasonProtocolMismatch
	case errors.Is(err, protocol.ErrUnknownPacket), errors.Is(err, io.ErrUnexpectedEOF):
		reason = protocol.ReasonProtocolError
	default:
		var netErr net.Error
		if errors.As(err, &netErr) {
			reason = err.Error()
		} else {
			reason = protocol.ReasonProtocolError
		}
	}

	c.connLogger.Debug().Err(err).Str("reason", reason).Msg("read failed")
	s.Submit(func() { s.kick(c, reason, true) })
}

// writeLoop serializes queued packets onto the connection, flushing whenever
// the queue runs dry. It closes the connection when the queue is closed.
func (s *MappingServer) writeLoop(c *session) {
	defer s.conns.Done()
	defer c.conn.Close()

	buf := bufio.NewWriter(c.conn)
	for p := range c.out {
		frame, err := s.registry.Marshal(p)
		if err == nil {
			_, err = buf.Write(frame)
		}
		if err == nil && len(c.out) == 0 {
			err = buf.Flush()
		}
		if err != nil {
			c.connLogger.Warn().Err(err).Msgf("write %T failed", p)
			s.Submit(func() { s.kick(c, err.Error(), true) })
			_ = c.conn.Close()
			drain(c.out)
			return
		}
	}
	_ = buf.Flush()
}

// drain discards packets until the mutator closes the queue.
func drain(out <-chan protocol.Packet) {
	for range out {
	}
}
