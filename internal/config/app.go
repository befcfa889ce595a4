package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/tuskmem/pkg/log"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type AppConfig struct {
	RuntimePath string `env:"TUSKMEM_RUNTIME_PATH" envDefault:".tuskmem"`

	// Storage backend: memory, sqlite or redis
	StoreBackend string `env:"TUSKMEM_STORE" envDefault:"sqlite"`

	// HTTP transport
	HTTPAddr string `env:"TUSKMEM_HTTP_ADDR" envDefault:":8080"`

	// Memory policy
	Capacity    int  `env:"TUSKMEM_CAPACITY" envDefault:"3"`
	TokenBudget int  `env:"TUSKMEM_TOKEN_BUDGET" envDefault:"3000"`
	EnableRecap bool `env:"TUSKMEM_ENABLE_RECAP" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "tuskmem.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetStoreBackend() string {
	return c.StoreBackend
}

func (c AppConfig) GetCapacity() int {
	return c.Capacity
}

func (c AppConfig) GetHTTPAddr() string {
	return c.HTTPAddr
}
