package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port: got %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host: got %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.BridgePath != DefaultBridgePath {
		t.Errorf("BridgePath: got %q", cfg.BridgePath)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"name": "myapp", "port": 8080, "bridgePath": "/ws"}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "myapp" {
		t.Errorf("Name: got %q", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port: got %d", cfg.Port)
	}
	if cfg.BridgePath != "/ws" {
		t.Errorf("BridgePath: got %q", cfg.BridgePath)
	}
	// Unspecified fields keep defaults.
	if cfg.Host != DefaultHost {
		t.Errorf("Host: got %q, want default", cfg.Host)
	}
	if cfg.Addr() != DefaultHost+":8080" {
		t.Errorf("Addr: got %q", cfg.Addr())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"PortTooLow", func(c *Config) { c.Port = 0 }, true},
		{"PortTooHigh", func(c *Config) { c.Port = 70000 }, true},
		{"EmptyHost", func(c *Config) { c.Host = "" }, true},
		{"RelativeBridgePath", func(c *Config) { c.BridgePath = "ws" }, true},
		{"RelativeMetricsPath", func(c *Config) { c.MetricsPath = "metrics" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
