// Package config loads qstate.json, the configuration file of the
// demo server. The library itself is configured purely through Schema
// values in code; this file only shapes the serving harness.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chrisneven/qstate/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "qstate.json"

	// DefaultPort is the default demo server port.
	DefaultPort = 3000

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"

	// DefaultBridgePath is where the WebSocket bridge is mounted.
	DefaultBridgePath = "/_qstate/ws"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config is the qstate.json schema.
type Config struct {
	// Name is the application name, used in logs.
	Name string `json:"name,omitempty"`

	// Host is the listen host.
	Host string `json:"host,omitempty"`

	// Port is the listen port.
	Port int `json:"port,omitempty"`

	// BridgePath is the WebSocket bridge mount point.
	BridgePath string `json:"bridgePath,omitempty"`

	// MetricsPath is the Prometheus metrics mount point.
	MetricsPath string `json:"metricsPath,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Name:        "qstate-demo",
		Host:        DefaultHost,
		Port:        DefaultPort,
		BridgePath:  DefaultBridgePath,
		MetricsPath: DefaultMetricsPath,
	}
}

// Load reads qstate.json from dir, falling back to defaults when the
// file does not exist. A file that exists but does not parse or
// validate is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.New("C001", errors.CategoryConfig, "cannot read configuration").
			WithDetail(path).
			WithCause(err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002", errors.CategoryConfig, "invalid JSON in configuration").
			WithDetail(path).
			WithCause(err).
			WithSuggestion("check " + ConfigFileName + " for syntax errors")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run
// with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("C003", errors.CategoryConfig, "port out of range").
			WithDetail(strconv.Itoa(c.Port)).
			WithSuggestion("use a port between 1 and 65535")
	}
	if c.Host == "" {
		return errors.New("C004", errors.CategoryConfig, "host must not be empty")
	}
	if c.BridgePath == "" || c.BridgePath[0] != '/' {
		return errors.New("C005", errors.CategoryConfig, "bridgePath must start with /").
			WithDetail(c.BridgePath)
	}
	if c.MetricsPath == "" || c.MetricsPath[0] != '/' {
		return errors.New("C006", errors.CategoryConfig, "metricsPath must start with /").
			WithDetail(c.MetricsPath)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
