// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
)

// validate checks that the final merged [StructuredConfig] can start a
// mapping server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxRejectedEdits < 0 {
		return fmt.Errorf("%w: negative max rejected edits", ErrInvalidServerConfigs)
	}
	if cfg.Server.OutboundQueueSize < 1 {
		return fmt.Errorf("%w: outbound queue size must be positive", ErrInvalidServerConfigs)
	}
	if cfg.Server.HTTPAddress != "" && (cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0) {
		return fmt.Errorf("%w: admin API needs a token sign key and duration", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.JarPath == "" {
		return fmt.Errorf("%w: jar path is required", ErrInvalidAppConfigs)
	}
	if len(cfg.App.Password) > protocol.MaxPasswordLength {
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidAppConfigs, protocol.MaxPasswordLength)
	}

	if cfg.Workers.AutosaveInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidAppConfigs)
	}
	if cfg.App.JarPath == "" {
		return fmt.Errorf("%w: jar path is required", ErrInvalidAppConfigs)
	}
	if len(cfg.App.Password) > protocol.MaxPasswordLength {
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidAppConfigs, protocol.MaxPasswordLength)
	}

	return nil
}
