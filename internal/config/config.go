// Package config loads process configuration from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/redis"
)

// Config is the process configuration shared by the commands
type Config struct {
	// RedisEndpoint switches storage to Redis when set
	RedisEndpoint string `env:"PHASES_REDIS_ENDPOINT"`
	RedisPoolSize int    `env:"PHASES_REDIS_POOL_SIZE" envDefault:"10"`
	RedisTLS      bool   `env:"PHASES_REDIS_TLS"`
	RedisDB       int    `env:"PHASES_REDIS_DB"`

	EncounterTTL   time.Duration `env:"PHASES_ENCOUNTER_TTL"    envDefault:"24h"`
	DiceSessionTTL time.Duration `env:"PHASES_DICE_SESSION_TTL" envDefault:"4h"`

	LogLevel string `env:"PHASES_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RedisPoolSize < 1 {
		vb.InvalidField("RedisPoolSize", "must be at least 1")
	}
	if c.EncounterTTL < 0 {
		vb.InvalidField("EncounterTTL", "must not be negative")
	}
	if c.DiceSessionTTL < 0 {
		vb.InvalidField("DiceSessionTTL", "must not be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

// UseRedis reports whether a Redis endpoint is configured
func (c *Config) UseRedis() bool {
	return c.RedisEndpoint != ""
}

// RedisOptions returns the client options for the configured Redis
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		PoolSize: c.RedisPoolSize,
		UseTLS:   c.RedisTLS,
		DB:       c.RedisDB,
	}
}

// SlogLevel returns the configured log level, info when unknown
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
