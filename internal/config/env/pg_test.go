package env

import (
	"testing"
	"time"
)

func TestNewPGConfig(t *testing.T) {
	t.Setenv(dsnEnvName, "postgres://localhost/scratch")
	t.Setenv(maxConnsEnvName, "")
	t.Setenv(connectTimeoutEnvName, "")

	cfg, err := NewPGConfig()
	if err != nil {
		t.Fatalf("NewPGConfig() error = %v", err)
	}
	if cfg.DSN() != "postgres://localhost/scratch" {
		t.Errorf("DSN() = %q", cfg.DSN())
	}
	if cfg.MaxConns() != 0 {
		t.Errorf("MaxConns() = %d, want 0", cfg.MaxConns())
	}
	if cfg.ConnectTimeout() != defaultConnectTimeout {
		t.Errorf("ConnectTimeout() = %v, want %v", cfg.ConnectTimeout(), defaultConnectTimeout)
	}
}

func TestNewPGConfigPoolSettings(t *testing.T) {
	t.Setenv(dsnEnvName, "postgres://localhost/scratch")
	t.Setenv(maxConnsEnvName, "8")
	t.Setenv(connectTimeoutEnvName, "2s")

	cfg, err := NewPGConfig()
	if err != nil {
		t.Fatalf("NewPGConfig() error = %v", err)
	}
	if cfg.MaxConns() != 8 || cfg.ConnectTimeout() != 2*time.Second {
		t.Errorf("pool settings = %d, %v", cfg.MaxConns(), cfg.ConnectTimeout())
	}
}

func TestNewPGConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		conns   string
		timeout string
	}{
		{"missing dsn", "", "", ""},
		{"bad max conns", "postgres://x", "many", ""},
		{"negative max conns", "postgres://x", "-1", ""},
		{"bad timeout", "postgres://x", "", "soon"},
		{"zero timeout", "postgres://x", "", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(dsnEnvName, tt.dsn)
			t.Setenv(maxConnsEnvName, tt.conns)
			t.Setenv(connectTimeoutEnvName, tt.timeout)

			if _, err := NewPGConfig(); err == nil {
				t.Error("NewPGConfig() error = nil")
			}
		})
	}
}
