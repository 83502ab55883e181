package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration.
type Config struct {
	Addr       string `env:"ADDR,default=:8080"`
	DBPath     string `env:"DB_PATH,default=community.db"`
	SessionKey string `env:"SESSION_KEY"`
	StaticDir  string `env:"STATIC_DIR,default=static"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
