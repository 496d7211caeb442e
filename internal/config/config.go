package config

import (
	"scratchcard/internal/audio"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
	ConnectTimeout() time.Duration
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

// EngineConfig настройки движка карт и звука из config.yaml
type EngineConfig interface {
	Scratch() scratch.Config
	Audio() audio.Config
}

// FillerConfig каталог утешительных сообщений
type FillerConfig interface {
	Messages() []model.FillerMessage
}

// ClientConfig адрес бэкенда и токен для клиентских приложений
type ClientConfig interface {
	BaseURL() string
	Token() string
	Timeout() time.Duration
}
