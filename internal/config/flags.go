package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line into a config.
//
// Flags:
//
//	-a mapping server address in format [host]:[port]
//	-http admin HTTP API address in format [host]:[port]
//	-u username
//	-p server password
//	-j jar path
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout admin request timeout (e.g., "30s", "1m")
//	-max-rejected-edits rejected edits before a kick
//	-queue-size outbound packets buffered per connection
//	-autosave-interval autosave period (e.g., "1m")
//	-status-url admin API base URL for the client
//	-log-level zerolog level
//	-log-file client log file
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var address, httpAddress NetAddress
	var cfg StructuredConfig

	fs.Var(&address, "a", "Mapping server address host:port")
	fs.Var(&httpAddress, "http", "Admin HTTP address host:port")
	fs.StringVar(&cfg.App.Username, "u", "", "Username")
	fs.StringVar(&cfg.App.Password, "p", "", "Server password")
	fs.StringVar(&cfg.App.JarPath, "j", "", "Jar path")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&cfg.Server.MaxRejectedEdits, "max-rejected-edits", 0, "Rejected edits in a row before a kick")
	fs.IntVar(&cfg.Server.OutboundQueueSize, "queue-size", 0, "Outbound packets buffered per connection")
	fs.DurationVar(&cfg.Workers.AutosaveInterval, "autosave-interval", 0, "Autosave period (e.g., 1m)")
	fs.StringVar(&cfg.Adapter.StatusURL, "status-url", "", "Admin API base URL")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.Address = address.String()
	cfg.Server.HTTPAddress = httpAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means every interface. It validates the port range and checks
// IP correctness unless host is "localhost".
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
