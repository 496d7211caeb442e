package env

import (
	"errors"
	"fmt"
	"os"
	"scratchcard/internal/config"
	"strconv"
	"time"
)

const (
	dsnEnvName            = "PG_DSN"
	maxConnsEnvName       = "PG_MAX_CONNS"
	connectTimeoutEnvName = "PG_CONNECT_TIMEOUT"

	defaultConnectTimeout = 5 * time.Second
)

type pgConfig struct {
	dsn            string
	maxConns       int32
	connectTimeout time.Duration
}

// NewPGConfig читает PG_DSN (обязателен), PG_MAX_CONNS и PG_CONNECT_TIMEOUT.
// Нулевой MaxConns оставляет значение пула по умолчанию.
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnEnvName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	cfg := &pgConfig{
		dsn:            dsn,
		connectTimeout: defaultConnectTimeout,
	}

	if raw := os.Getenv(maxConnsEnvName); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s %q", maxConnsEnvName, raw)
		}
		cfg.maxConns = int32(n)
	}

	if raw := os.Getenv(connectTimeoutEnvName); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q", connectTimeoutEnvName, raw)
		}
		cfg.connectTimeout = d
	}

	return cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}

func (cfg *pgConfig) ConnectTimeout() time.Duration {
	return cfg.connectTimeout
}
