package env

import (
	"errors"
	"fmt"
	"os"
	"scratchcard/internal/config"
	"strings"
	"time"
)

const (
	apiURLEnvName     = "SCRATCH_API_URL"
	apiTokenEnvName   = "SCRATCH_TOKEN"
	apiTimeoutEnvName = "SCRATCH_TIMEOUT"

	defaultAPITimeout = 10 * time.Second
)

type clientConfig struct {
	baseURL string
	token   string
	timeout time.Duration
}

func NewClientConfig() (config.ClientConfig, error) {
	baseURL := strings.TrimRight(os.Getenv(apiURLEnvName), "/")
	if len(baseURL) == 0 {
		return nil, errors.New("scratch api url not found")
	}

	token := os.Getenv(apiTokenEnvName)
	if len(token) == 0 {
		return nil, errors.New("scratch api token not found")
	}

	timeout := defaultAPITimeout
	if raw := os.Getenv(apiTimeoutEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid api timeout: %w", err)
		}
		timeout = parsed
	}

	return &clientConfig{baseURL: baseURL, token: token, timeout: timeout}, nil
}

func (c *clientConfig) BaseURL() string        { return c.baseURL }
func (c *clientConfig) Token() string          { return c.token }
func (c *clientConfig) Timeout() time.Duration { return c.timeout }
