package tracker

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/raidledger/raidledger/tracker/database"
	"github.com/raidledger/raidledger/tracker/logger"
)

const EnvPrefix = "RAIDLEDGER_"

// LoadConfig reads the TOML file at path over the defaults and then applies
// RAIDLEDGER_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: "text"},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "raidledger",
			Database: "raidledger",
			PoolSize: 10,
		},
		Web: WebConfig{
			Addr:          ":8080",
			CookieName:    "raidledger_session",
			SessionTTL:    Duration(30 * 24 * time.Hour),
			RateLimit:     120,
			AllowedOrigin: "http://localhost:3000",
		},
		Catalog: CatalogConfig{
			Endpoint: "https://api.tarkov.dev/graphql",
			CacheDir: "ref-cache",
			TTL:      Duration(24 * time.Hour),
			Timeout:  Duration(30 * time.Second),
		},
	}
}

type Config struct {
	Log     LogConfig         `toml:"log" envPrefix:"LOG_"`
	Bot     BotConfig         `toml:"bot" envPrefix:"BOT_"`
	DB      database.DBConfig `toml:"db" envPrefix:"DB_"`
	Web     WebConfig         `toml:"web" envPrefix:"WEB_"`
	Catalog CatalogConfig     `toml:"catalog" envPrefix:"CATALOG_"`
	Mirror  MirrorConfig      `toml:"mirror" envPrefix:"MIRROR_"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" env:"TOKEN"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LEVEL"`
	Format    string     `toml:"format" env:"FORMAT"`
	AddSource bool       `toml:"add_source" env:"ADD_SOURCE"`
}

func (c LogConfig) Options() logger.Options {
	return logger.Options{Level: c.Level, Format: c.Format, AddSource: c.AddSource}
}

type WebConfig struct {
	Addr          string   `toml:"addr" env:"ADDR"`
	SessionSecret string   `toml:"session_secret" env:"SESSION_SECRET"`
	CookieName    string   `toml:"cookie_name" env:"COOKIE_NAME"`
	SessionTTL    Duration `toml:"session_ttl" env:"SESSION_TTL"`
	SecureCookie  bool     `toml:"secure_cookie" env:"SECURE_COOKIE"`
	AllowedOrigin string   `toml:"allowed_origin" env:"ALLOWED_ORIGIN"`
	// RateLimit is the number of requests allowed per client per minute.
	RateLimit int `toml:"rate_limit" env:"RATE_LIMIT"`
}

type CatalogConfig struct {
	Endpoint string   `toml:"endpoint" env:"ENDPOINT"`
	WikiURL  string   `toml:"wiki_url" env:"WIKI_URL"`
	CacheDir string   `toml:"cache_dir" env:"CACHE_DIR"`
	TTL      Duration `toml:"ttl" env:"TTL"`
	Timeout  Duration `toml:"timeout" env:"TIMEOUT"`
}

// MirrorConfig configures the optional object store copy of the catalog.
// The mirror is disabled while Bucket is empty.
type MirrorConfig struct {
	Endpoint  string `toml:"endpoint" env:"ENDPOINT"`
	Region    string `toml:"region" env:"REGION"`
	Bucket    string `toml:"bucket" env:"BUCKET"`
	Prefix    string `toml:"prefix" env:"PREFIX"`
	AccessKey string `toml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `toml:"secret_key" env:"SECRET_KEY"`
}

func (c MirrorConfig) Enabled() bool {
	return c.Bucket != ""
}

// Duration decodes values such as "24h" from TOML and the environment.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
