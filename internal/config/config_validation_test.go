package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults with jar",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "empty address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.Address = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "negative rejected edits",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.MaxRejectedEdits = -1 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero queue",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.OutboundQueueSize = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "admin API without sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = ":8080" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name: "admin API with sign key",
			mutate: func(cfg *StructuredConfig) {
				cfg.Server.HTTPAddress = ":8080"
				cfg.App.TokenSignKey = "key"
			},
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "no jar",
			mutate:  func(cfg *StructuredConfig) { cfg.App.JarPath = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "password too long",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Password = strings.Repeat("x", 256) },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "no autosave interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.AutosaveInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		cfg := newClientConfig(validServerConfig())
		cfg.App.Username = "alice"
		return cfg
	}

	assert.NoError(t, valid().validate())

	cfg := valid()
	cfg.Adapter.ServerAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)

	cfg = valid()
	cfg.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)

	cfg = valid()
	cfg.App.JarPath = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)

	cfg = valid()
	cfg.App.Password = strings.Repeat("x", 256)
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}
