package config

import (
	"net"
	"strconv"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/protocol"
)

// Default values applied to every field no other source sets.
const (
	DefaultDSN               = "file:mappings.db?_foreign_keys=on"
	DefaultTokenIssuer       = "go-mapping-keeper"
	DefaultTokenDuration     = time.Hour
	DefaultLogLevel          = "info"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultAdapterTimeout    = 5 * time.Second
	DefaultMaxRejectedEdits  = 16
	DefaultOutboundQueueSize = 256
	DefaultAutosaveInterval  = time.Minute
)

// DefaultAddress is the mapping protocol address on the default port.
var DefaultAddress = net.JoinHostPort("", strconv.Itoa(protocol.DefaultPort))

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Server: Server{
			Address:           DefaultAddress,
			RequestTimeout:    DefaultRequestTimeout,
			MaxRejectedEdits:  DefaultMaxRejectedEdits,
			OutboundQueueSize: DefaultOutboundQueueSize,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			AutosaveInterval: DefaultAutosaveInterval,
		},
	}
}
