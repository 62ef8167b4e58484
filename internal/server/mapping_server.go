// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/crypto"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/mapping"
	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

// taskQueueSize is the capacity of the mutator queue. Readers block when it
// is full.
const taskQueueSize = 1024

// MappingServer is the authoritative side of a collaborative session. All
// fields below the mutator marker are only touched by the mutator goroutine.
type MappingServer struct {
	registry *protocol.Registry
	verifier crypto.PasswordVerifier
	checksum utils.Checksum
	writer   MappingWriter
	resolver models.EntryResolver
	ids      *utils.UUIDGenerator
	logger   *logger.Logger

	maxRejected int
	queueSize   int

	tasks    chan func()
	done     chan struct{}
	submitMu sync.RWMutex
	closed   bool
	inlineMu sync.Mutex

	listenerMu sync.Mutex
	listener   net.Listener
	stopping   bool
	stopOnce   sync.Once
	conns      sync.WaitGroup

	// mutator
	tree         *mapping.DeltaTrackingTree
	sessions     map[*session]struct{}
	usernames    map[string]*session
	locksByEntry map[models.Entry]*lockRecord
	locksBySync  map[uint16]*lockRecord
	nextSyncID   uint16
	slow         []*session
}

// Option customizes a MappingServer.
type Option func(*MappingServer)

// WithResolver canonicalizes the target of every proposed change.
func WithResolver(r models.EntryResolver) Option {
	return func(s *MappingServer) { s.resolver = r }
}

// NewMappingServer starts the mutator over initial. The server does not
// accept connections until Serve is called; Stop must be called to release
// the mutator goroutine.
func NewMappingServer(
	initial mapping.Tree,
	checksum utils.Checksum,
	verifier crypto.PasswordVerifier,
	writer MappingWriter,
	cfg config.Server,
	log *logger.Logger,
	opts ...Option,
) *MappingServer {
	if initial == nil {
		initial = mapping.NewHashTree()
	}

	s := &MappingServer{
		registry:     protocol.NewRegistry(),
		verifier:     verifier,
		checksum:     checksum,
		writer:       writer,
		resolver:     models.IdentityResolver{},
		ids:          utils.NewUUIDGenerator(),
		logger:       log,
		maxRejected:  cfg.MaxRejectedEdits,
		queueSize:    max(cfg.OutboundQueueSize, 1),
		tasks:        make(chan func(), taskQueueSize),
		done:         make(chan struct{}),
		tree:         mapping.NewDeltaTrackingTree(mapping.CopyOf(initial)),
		sessions:     make(map[*session]struct{}),
		usernames:    make(map[string]*session),
		locksByEntry: make(map[models.Entry]*lockRecord),
		locksBySync:  make(map[uint16]*lockRecord),
		nextSyncID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.mutate()
	return s
}

// mutate runs queued tasks one at a time until the queue is closed.
func (s *MappingServer) mutate() {
	defer close(s.done)

	for task := range s.tasks {
		task()
		s.kickSlowConsumers()
	}
}

// Submit queues task for the mutator. It reports false once the server has
// stopped. Tasks run in submission order. It must not be called from a task.
func (s *MappingServer) Submit(task func()) bool {
	s.submitMu.RLock()
	defer s.submitMu.RUnlock()

	if s.closed {
		return false
	}
	s.tasks <- task
	return true
}

// call runs fn on the mutator and waits for it. After Stop fn runs on the
// caller's goroutine, since nothing else mutates the state anymore.
func (s *MappingServer) call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !s.Submit(func() { fn(); close(finished) }) {
		<-s.done
		s.inlineMu.Lock()
		defer s.inlineMu.Unlock()
		fn()
		return nil
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListenAndServe listens on the TCP address addr and calls Serve.
func (s *MappingServer) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Stop is called, then returns
// ErrServerClosed.
func (s *MappingServer) Serve(l net.Listener) error {
	s.listenerMu.Lock()
	if s.stopping {
		s.listenerMu.Unlock()
		_ = l.Close()
		return ErrServerClosed
	}
	s.listener = l
	s.listenerMu.Unlock()

	s.logger.Info().Str("address", l.Addr().String()).Msg("mapping server listening")

	for {
		conn, err := l.Accept()
		if err != nil {
			if s.isStopping() {
				return ErrServerClosed
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.accept(conn)
	}
}

// Addr returns the listening address, or nil before Serve.
func (s *MappingServer) Addr() net.Addr {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *MappingServer) isStopping() bool {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	return s.stopping
}

func (s *MappingServer) accept(conn net.Conn) {
	c := newSession(s.ids.Generate(), conn, s.queueSize, s.logger)

	s.listenerMu.Lock()
	if s.stopping {
		s.listenerMu.Unlock()
		_ = conn.Close()
		return
	}
	s.conns.Add(2)
	s.listenerMu.Unlock()

	if !s.Submit(func() { s.register(c) }) {
		s.conns.Add(-2)
		_ = conn.Close()
		return
	}

	go s.writeLoop(c)
	go s.readLoop(c)
}

func (s *MappingServer) register(c *session) {
	if s.isStopping() {
		c.enqueue(&protocol.Kick{Reason: protocol.ReasonServerClosed})
		c.state = stateDisconnected
		c.closeOutbound()
		return
	}

	s.sessions[c] = struct{}{}
	c.logger.Debug().Msg("client connected")
}

// Stop kicks every client with the server-closed reason, closes the listener
// and ends the mutator. It waits for connection goroutines until ctx is done.
// Calling Stop again is a no-op.
func (s *MappingServer) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		s.listenerMu.Lock()
		s.stopping = true
		if s.listener != nil {
			_ = s.listener.Close()
		}
		s.listenerMu.Unlock()

		err = s.call(ctx, func() {
			for c := range s.sessions {
				s.kick(c, protocol.ReasonServerClosed, false)
			}
		})

		s.submitMu.Lock()
		s.closed = true
		close(s.tasks)
		s.submitMu.Unlock()

		stopped := make(chan struct{})
		go func() {
			s.conns.Wait()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-ctx.Done():
			err = errors.Join(err, ctx.Err())
		}

		s.logger.Info().Msg("mapping server stopped")
	})
	return err
}
