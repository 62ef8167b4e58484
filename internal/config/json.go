package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of a JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Username      string   `json:"username"`
		Password      string   `json:"password"`
		JarPath       string   `json:"jar_path"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
		LogFile       string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		Address           string   `json:"address"`
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		MaxRejectedEdits  int      `json:"max_rejected_edits"`
		OutboundQueueSize int      `json:"outbound_queue_size"`
	} `json:"server,omitempty"`

	Adapter struct {
		StatusURL      string   `json:"status_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		AutosaveInterval Duration `json:"autosave_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Username:      jsonCfg.App.Username,
			Password:      jsonCfg.App.Password,
			JarPath:       jsonCfg.App.JarPath,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
			LogFile:       jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			Address:           jsonCfg.Server.Address,
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			MaxRejectedEdits:  jsonCfg.Server.MaxRejectedEdits,
			OutboundQueueSize: jsonCfg.Server.OutboundQueueSize,
		},
		Adapter: Adapter{
			StatusURL:      jsonCfg.Adapter.StatusURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			AutosaveInterval: time.Duration(jsonCfg.Workers.AutosaveInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
