// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
)

// AutosaveWorker saves the mapping tree on a fixed interval. The final save
// on shutdown is left to the server.
type AutosaveWorker struct {
	saver    Saver
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

func NewAutosaveWorker(saver Saver, cfg config.Workers, log *logger.Logger) *AutosaveWorker {
	return &AutosaveWorker{
		saver:    saver,
		interval: cfg.AutosaveInterval,
		timeout:  cfg.AutosaveInterval,
		logger:   log,
	}
}

// Run saves every interval until ctx is cancelled. A failed save is logged
// and retried on the next tick.
func (w *AutosaveWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("autosave worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("autosave worker stopped")
			return
		case <-ticker.C:
			w.save(ctx)
		}
	}
}

func (w *AutosaveWorker) save(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.saver.Save(ctx); err != nil {
		w.logger.Err(err).Msg("autosave failed")
	}
}
