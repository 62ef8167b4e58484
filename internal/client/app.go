package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mapping-keeper/internal/adapter"
	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/tui"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
)

// App is the terminal client: one connection shown through the TUI.
type App struct {
	cfg    *config.ClientConfig
	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is nil")
	}
	return &App{cfg: cfg, logger: logger}, nil
}

// Run hashes the local jar, connects and blocks until the UI is closed.
func (a *App) Run(ctx context.Context) error {
	checksum, err := utils.JarChecksum(a.cfg.App.JarPath)
	if err != nil {
		return fmt.Errorf("checksum jar: %w", err)
	}
	a.logger.Info().Str("checksum", checksum.String()).Msg("jar hashed")

	status, err := adapter.NewStatusAdapter(a.cfg.Adapter, a.logger)
	if err != nil {
		return fmt.Errorf("create status adapter: %w", err)
	}

	ui := tui.New(a.cfg.App.Username, status, a.logger)

	dialCtx, cancel := context.WithTimeout(ctx, a.cfg.Adapter.RequestTimeout)
	defer cancel()

	c, err := Connect(dialCtx, a.cfg.Adapter.ServerAddress, Credentials{
		Username: a.cfg.App.Username,
		Password: a.cfg.App.Password,
		Checksum: checksum,
	}, ui, a.logger)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	go func() {
		select {
		case <-ctx.Done():
			ui.Quit()
		case <-c.Done():
		}
	}()

	if err = ui.Run(c); err != nil {
		return err
	}

	if reason := c.Reason(); reason != "" {
		a.logger.Info().Str("reason", reason).Msg("session ended")
	}
	return nil
}
