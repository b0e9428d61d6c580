// Package config loads environment variables into a typed Config.
// Defaults let the bot run locally with only DISCORD_TOKEN set; the
// Twitch monitor is disabled when its client credentials are missing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	// Discord
	DiscordToken   string
	DiscordGuildID string // empty registers commands globally

	// Database
	DBDriver string // sqlite | postgres
	DBPath   string
	DBDsn    string

	// Twitch
	TwitchClientID     string
	TwitchClientSecret string
	TwitchPollInterval time.Duration

	// Race claims
	ClaimSweepInterval time.Duration

	// Ops HTTP
	HTTPAddr     string
	APIJWTSecret string

	// Redis (optional cache backend)
	RedisHost     string
	RedisPort     string
	RedisPassword string
}

// Load reads a local .env if present, then the environment.
func Load() (*Config, error) {
	// .env is a local dev convenience; production uses real env
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID:     os.Getenv("DISCORD_GUILD_ID"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBPath:             getEnv("DB_PATH", "data/pinkslip.db"),
		DBDsn:              os.Getenv("DB_DSN"),
		TwitchClientID:     os.Getenv("TWITCH_CLIENT_ID"),
		TwitchClientSecret: os.Getenv("TWITCH_CLIENT_SECRET"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		APIJWTSecret:       os.Getenv("API_JWT_SECRET"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.TwitchPollInterval, err = getDuration("TWITCH_POLL_INTERVAL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ClaimSweepInterval, err = getDuration("CLAIM_SWEEP_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.DBDsn == "" {
			return errors.New("DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// TwitchEnabled reports whether the live-stream monitor has credentials.
func (c *Config) TwitchEnabled() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

// RedisEnabled reports whether a Redis cache backend is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("invalid %s: must be positive", key)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
