package client

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(nil, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunMissingJar(t *testing.T) {
	app, err := NewApp(&config.ClientConfig{
		App: config.ClientApp{Username: "alice", JarPath: t.TempDir() + "/missing.jar"},
	}, logger.Nop())
	require.NoError(t, err)

	assert.ErrorContains(t, app.Run(context.Background()), "checksum jar")
}
