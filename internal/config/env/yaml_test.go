package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewEngineConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
scratch:
  threshold: 0.6
  reveal_delay: 750ms
  stroke_radius: 14
  sample_stride: 8
  width: 240
  height: 120
  label:
    text: "SCRATCH ME"
    cover: "#999999"
audio:
  volume: 0.5
  cutoff_min: 1500
  cutoff_max: 2500
`)

	cfg, err := NewEngineConfigFromYAML(path)
	if err != nil {
		t.Fatalf("NewEngineConfigFromYAML() error = %v", err)
	}

	s := cfg.Scratch()
	if s.Threshold != 0.6 || s.RevealDelay != 750*time.Millisecond || s.StrokeRadius != 14 {
		t.Errorf("scratch section = %+v", s)
	}
	if s.DefaultWidth != 240 || s.DefaultHeight != 120 || s.SampleStride != 8 {
		t.Errorf("scratch size/stride = %+v", s)
	}
	if s.Label != "SCRATCH ME" || s.CoverColor != "#999999" {
		t.Errorf("label = %q cover = %q", s.Label, s.CoverColor)
	}

	a := cfg.Audio()
	if a.Volume != 0.5 || a.CutoffMin != 1500 || a.CutoffMax != 2500 {
		t.Errorf("audio section = %+v", a)
	}
	// не заданные в файле поля берутся из значений по умолчанию
	if !a.Enabled || a.Duration != 150*time.Millisecond {
		t.Errorf("audio defaults lost: %+v", a)
	}
}

func TestNewEngineConfigWithoutAudio(t *testing.T) {
	cfg, err := NewEngineConfigFromYAML(writeConfig(t, "scratch:\n  threshold: 0.7\n"))
	if err != nil {
		t.Fatalf("NewEngineConfigFromYAML() error = %v", err)
	}
	if !cfg.Audio().Enabled {
		t.Error("audio disabled without an audio section")
	}
}

func TestNewEngineConfigRejectsBadThreshold(t *testing.T) {
	if _, err := NewEngineConfigFromYAML(writeConfig(t, "scratch:\n  threshold: 7\n")); err == nil {
		t.Error("expected an error for threshold 7")
	}
}

func TestNewFillerConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
filler_messages:
  - message: "So close!"
    emoji: "😅"
    category: "near_miss"
  - message: "Next one is yours"
    emoji: "🍀"
    category: "luck"
`)

	cfg, err := NewFillerConfigFromYAML(path)
	if err != nil {
		t.Fatalf("NewFillerConfigFromYAML() error = %v", err)
	}

	msgs := cfg.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].Category != "luck" || msgs[1].Emoji != "🍀" {
		t.Errorf("second message = %+v", msgs[1])
	}
}

func TestNewFillerConfigRejectsEmptyMessage(t *testing.T) {
	if _, err := NewFillerConfigFromYAML(writeConfig(t, "filler_messages:\n  - emoji: x\n")); err == nil {
		t.Error("expected an error for an empty message")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := NewEngineConfigFromYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv(accessTokenKeyEnvName, "secret")
	t.Setenv(accessTokenDurationEnvName, "")

	cfg, err := NewJWTConfig()
	if err != nil {
		t.Fatalf("NewJWTConfig() error = %v", err)
	}
	if string(cfg.AccessTokenSecretKey()) != "secret" {
		t.Errorf("secret = %q", cfg.AccessTokenSecretKey())
	}
	if cfg.AccessTokenDuration() != defaultAccessTokenDuration {
		t.Errorf("duration = %v", cfg.AccessTokenDuration())
	}

	t.Setenv(accessTokenDurationEnvName, "soon")
	if _, err := NewJWTConfig(); err == nil {
		t.Error("expected an error for a bad duration")
	}
}

func TestNewClientConfig(t *testing.T) {
	t.Setenv(apiURLEnvName, "http://localhost:8080/")
	t.Setenv(apiTokenEnvName, "tok")
	t.Setenv(apiTimeoutEnvName, "3s")

	cfg, err := NewClientConfig()
	if err != nil {
		t.Fatalf("NewClientConfig() error = %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8080" || cfg.Token() != "tok" || cfg.Timeout() != 3*time.Second {
		t.Errorf("client config = %q %q %v", cfg.BaseURL(), cfg.Token(), cfg.Timeout())
	}

	t.Setenv(apiTokenEnvName, "")
	if _, err := NewClientConfig(); err == nil {
		t.Error("expected an error without a token")
	}
}

func TestHTTPConfigDefault(t *testing.T) {
	t.Setenv(httpAddressEnvName, "")
	cfg, _ := NewHTTPConfig()
	if cfg.Address() != defaultHTTPAddress {
		t.Errorf("Address() = %q", cfg.Address())
	}
}
