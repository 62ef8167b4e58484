package config

import (
	"fmt"
	"time"
)

// ClientApp holds the identity the client logs in with.
type ClientApp struct {
	// Username is the login name.
	Username string
	// Password is the server password, empty when the server has none.
	Password string
	// JarPath is the local copy of the jar the checksum is computed from.
	JarPath string
	// LogLevel and LogFile configure the client log.
	LogLevel string
	LogFile  string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the mapping server TCP address.
	ServerAddress string
	// StatusURL is the admin HTTP API base URL. Empty disables /status.
	StatusURL string
	// RequestTimeout is the default timeout for outbound client requests
	// and for dialing the server.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains the login identity and logging settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config from every source, maps only the fields relevant
// to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Username: cfg.App.Username,
			Password: cfg.App.Password,
			JarPath:  cfg.App.JarPath,
			LogLevel: cfg.App.LogLevel,
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Server.Address,
			StatusURL:      cfg.Adapter.StatusURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}
}
