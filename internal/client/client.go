package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-mapping-keeper/internal/codec"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// Credentials are sent in the Login packet.
type Credentials struct {
	Username string
	Password string
	Checksum utils.Checksum
}

// Client is one connection to a mapping server.
type Client struct {
	conn     net.Conn
	registry *protocol.Registry
	handler  Handler
	logger   *logger.Logger

	writeMu sync.Mutex

	mu     sync.RWMutex
	mirror *mapping.HashTree
	users  []string
	reason string

	started atomic.Bool
	closing atomic.Bool
	done    chan struct{}
}

// Connect dials address, sends the Login packet and starts reading. A
// refused login is not an error here: the server answers it with a kick,
// which reaches the handler through OnDisconnect.
func Connect(ctx context.Context, address string, creds Credentials, handler Handler, log *logger.Logger) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}

	c := New(conn, handler, log)
	if err = c.Login(creds); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an established connection. Nothing is read until Login.
func New(conn net.Conn, handler Handler, log *logger.Logger) *Client {
	return &Client{
		conn:     conn,
		registry: protocol.NewRegistry(),
		handler:  handler,
		logger:   log.ForSession("client", conn.RemoteAddr().String()),
		mirror:   mapping.NewHashTree(),
		done:     make(chan struct{}),
	}
}

// Login sends the credentials and starts the reader goroutine. It may be
// called once.
func (c *Client) Login(creds Credentials) error {
	frame, err := c.registry.Marshal(protocol.NewLogin(creds.Username, creds.Password, creds.Checksum))
	if err != nil {
		return fmt.Errorf("encode login: %w", err)
	}
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyLogin
	}

	c.logger = c.logger.WithUsername(creds.Username)
	go c.readLoop()

	return c.write(frame)
}

// SendChange applies change to the mirror and proposes it to the server.
// When the server refuses the edit it sends back a correction that restores
// the mirror.
func (c *Client) SendChange(change models.EntryChange) error {
	if change.IsNoop() {
		return ErrNoopChange
	}

	c.apply(change)
	return c.send(&protocol.ProposeChange{Change: change})
}

// SendMessage sends a chat line.
func (c *Client) SendMessage(text string) error {
	return c.send(&protocol.ChatMessage{Text: text})
}

// Mapping returns the mirrored mapping of entry.
func (c *Client) Mapping(entry models.Entry) (models.Mapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mirror.Get(entry)
}

// Tree returns a copy of the mirror.
func (c *Client) Tree() *mapping.HashTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirror.Snapshot()
}

// Users returns the last user list received.
func (c *Client) Users() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.users)
}

// Done is closed when the session has ended.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Reason returns why the session ended, or "" while it is alive.
func (c *Client) Reason() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reason
}

// Close ends the session and waits for the reader goroutine.
func (c *Client) Close() error {
	c.closing.Store(true)
	err := c.conn.Close()
	if c.started.Load() {
		<-c.done
	}
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (c *Client) readLoop() {
	defer close(c.done)

	src := codec.NewReader(bufio.NewReader(c.conn))
	var reason string
	for reason == "" {
		p, err := c.registry.Read(src, protocol.ServerToClient)
		if err != nil {
			reason = c.readErrorReason(err)
			break
		}
		reason = c.handle(p)
	}

	_ = c.conn.Close()
	c.mu.Lock()
	c.reason = reason
	c.mu.Unlock()

	c.logger.Info().Str("reason", reason).Msg("disconnected")
	c.handler.OnDisconnect(reason)
}

func (c *Client) readErrorReason(err error) string {
	if c.closing.Load() || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return protocol.ReasonDisconnected
	}
	c.logger.Warn().Err(err).Msg("read failed")
	if errors.Is(err, protocol.ErrUnknownPacket) || errors.Is(err, io.ErrUnexpectedEOF) {
		return protocol.ReasonProtocolError
	}
	return err.Error()
}

// handle processes one packet. A non-empty result ends the session.
func (c *Client) handle(p protocol.Packet) string {
	switch p := p.(type) {
	case *protocol.Kick:
		return p.Reason

	case *protocol.SyncMappings:
		tree := mapping.NewHashTree()
		if p.Tree != nil {
			tree = mapping.CopyOf(p.Tree)
		}

		c.mu.Lock()
		c.mirror = tree
		snapshot := c.mirror.Snapshot()
		c.mu.Unlock()

		c.logger.Debug().Int("mappings", snapshot.Len()).Msg("mappings synced")
		if err := c.send(&protocol.ConfirmChange{SyncID: protocol.DummySyncID}); err != nil {
			return err.Error()
		}
		c.handler.OnSyncMappings(snapshot)

	case *protocol.EntryChanged:
		current := c.apply(p.Change)
		if p.SyncID != protocol.DummySyncID {
			if err := c.send(&protocol.ConfirmChange{SyncID: p.SyncID}); err != nil {
				return err.Error()
			}
		}
		c.handler.OnEntryChange(p.Change, current)

	case *protocol.Message:
		c.handler.OnMessage(p.Text)

	case *protocol.UserList:
		c.mu.Lock()
		c.users = slices.Clone(p.Users)
		c.mu.Unlock()
		c.handler.OnUserList(slices.Clone(p.Users))
	}
	return ""
}

// apply runs change against the mirror and returns the resulting mapping.
func (c *Client) apply(change models.EntryChange) models.Mapping {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, _ := c.mirror.Get(change.Target)
	next := change.Apply(old)
	c.mirror.Insert(change.Target, next)
	return next
}

func (c *Client) send(p protocol.Packet) error {
	frame, err := c.registry.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %T: %w", p, err)
	}
	return c.write(frame)
}

// write serializes frames onto the connection.
func (c *Client) write(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closing.Load() {
		return ErrClosed
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
