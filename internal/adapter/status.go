package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
)

type httpStatusAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewStatusAdapter builds a [StatusAdapter] for cfg.StatusURL. An empty URL
// gives an adapter whose calls fail with [ErrStatusDisabled].
func NewStatusAdapter(cfg config.ClientAdapter, logger *logger.Logger) (StatusAdapter, error) {
	if strings.TrimSpace(cfg.StatusURL) == "" {
		return disabledAdapter{}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.StatusURL)
	if err != nil {
		return nil, fmt.Errorf("invalid status url: %w", err)
	}

	return &httpStatusAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpStatusAdapter) Status(ctx context.Context) (server.Status, error) {
	var status server.Status
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/status")
	if err != nil {
		return server.Status{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Warn().Err(err).Msg("status refused")
		return server.Status{}, err
	}

	return status, nil
}

func (h *httpStatusAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

type disabledAdapter struct{}

func (disabledAdapter) Status(context.Context) (server.Status, error) {
	return server.Status{}, ErrStatusDisabled
}

func (disabledAdapter) Version(context.Context) (string, error) {
	return "", ErrStatusDisabled
}
