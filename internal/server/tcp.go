package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
)

// shutdownTimeout bounds the final kick round and the shutdown save.
const shutdownTimeout = 30 * time.Second

type tcpServer struct {
	mappings *MappingServer
	listener net.Listener
	logger   *logger.Logger
}

func newTCPServer(mappings *MappingServer, listener net.Listener, logger *logger.Logger) *tcpServer {
	return &tcpServer{
		mappings: mappings,
		listener: listener,
		logger:   logger,
	}
}

func (t *tcpServer) RunServer() {
	if err := t.mappings.Serve(t.listener); err != nil && !errors.Is(err, ErrServerClosed) {
		t.logger.Error().Err(err).Msg("mapping server Serve")
	}
}

// Shutdown kicks every client and saves what is left unsaved.
func (t *tcpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	t.logger.Info().Msg("mapping server Shutdown")
	if err := t.mappings.Stop(ctx); err != nil {
		t.logger.Error().Err(err).Msg("stop mapping server")
	}
	if err := t.mappings.Save(ctx); err != nil {
		t.logger.Error().Err(err).Msg("shutdown save")
	}
}
