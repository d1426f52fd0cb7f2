package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the HTTP calculator settings read from the environment.
type ServerConfig struct {
	Addr           string        `env:"FIREPROJ_ADDR" envDefault:":8080"`
	ConfigFile     string        `env:"FIREPROJ_CONFIG"`
	MaxYears       int           `env:"FIREPROJ_MAX_YEARS" envDefault:"200"`
	RedisAddr      string        `env:"FIREPROJ_REDIS_ADDR"`
	RedisPassword  string        `env:"FIREPROJ_REDIS_PASSWORD"`
	RedisDB        int           `env:"FIREPROJ_REDIS_DB" envDefault:"0"`
	CacheTTL       time.Duration `env:"FIREPROJ_CACHE_TTL" envDefault:"1h"`
	CacheSize      int           `env:"FIREPROJ_CACHE_SIZE" envDefault:"1024"`
	RateLimit      int           `env:"FIREPROJ_RATE_LIMIT" envDefault:"60"`
	RateRefill     time.Duration `env:"FIREPROJ_RATE_REFILL" envDefault:"1m"`
	ReadTimeout    time.Duration `env:"FIREPROJ_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"FIREPROJ_WRITE_TIMEOUT" envDefault:"15s"`
	RequestTimeout time.Duration `env:"FIREPROJ_REQUEST_TIMEOUT" envDefault:"5s"`
	Verbose        bool          `env:"FIREPROJ_VERBOSE"`
}

// LoadServerConfig loads server configuration from environment variables.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxYears <= 0 || cfg.MaxYears > MaxYearsLimit {
		return ServerConfig{}, fmt.Errorf("FIREPROJ_MAX_YEARS must be between 1 and %d", MaxYearsLimit)
	}
	return cfg, nil
}
