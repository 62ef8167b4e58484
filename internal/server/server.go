package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
)

type server struct {
	tcpServer  *tcpServer
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer combines the mapping server, serving on listener, with the
// optional admin HTTP API. The listener is bound by the caller so that a
// bind failure stops startup. adminHandler may be nil when cfg.HTTPAddress
// is empty.
func NewServer(mappings *MappingServer, listener net.Listener, adminHandler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if mappings != nil && listener != nil {
		servers.tcpServer = newTCPServer(mappings, listener, logger)
	}
	if cfg.HTTPAddress != "" && adminHandler != nil {
		servers.httpServer = newHTTPServer(adminHandler, cfg, logger)
	}

	if servers.tcpServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	if s.httpServer != nil {
		s.logger.Info().Msg("Launching admin HTTP server")
		go s.httpServer.RunServer()
	}
	s.logger.Info().Msg("Launching mapping server")
	go s.tcpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}

// Shutdown stops the admin API first so no admin request races the final
// save, then the mapping server.
func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
	s.tcpServer.Shutdown()
}
