/*
Package config reads the server configuration from the environment.

PURPOSE:
  Every setting has an environment variable and a default, so the server
  starts with no configuration at all (fixture backend on :8080). An
  optional .env file is loaded first; variables already set in the process
  environment win over the file.

VARIABLES:
  PORT                  HTTP port (8080)
  STORAGE_BACKEND       memory | sql | proxy (memory)
  DATABASE_URL          SQLite path or postgres:// URL (portal.db)
  SEED                  seed an empty database on start (true)
  QURAN_API_URL         upstream Quran API for the proxy backend
  QURAN_AUDIO_URL       base for relative recitation audio paths
  QURAN_TRANSLATION_ID  translation resource id (20, Saheeh International)
  QURAN_RECITER_ID      recitation resource id (7)
  UPSTREAM_TIMEOUT      per-request timeout for the upstream API (10s)
  CORS_ORIGINS          comma separated allowed origins
  BCRYPT_COST           password hashing cost (10)
  SHUTDOWN_TIMEOUT      graceful shutdown budget (30s)

SEE ALSO:
  - ../cmd/server: Uses Load
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
	BackendProxy  = "proxy"
)

type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	Backend         string        `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL" envDefault:"portal.db"`
	Seed            bool          `env:"SEED" envDefault:"true"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Quran QuranConfig
}

// QuranConfig configures the proxy backend's upstream.
type QuranConfig struct {
	BaseURL       string        `env:"QURAN_API_URL" envDefault:"https://api.quran.com/api/v4"`
	AudioBaseURL  string        `env:"QURAN_AUDIO_URL" envDefault:"https://verses.quran.com/"`
	TranslationID int           `env:"QURAN_TRANSLATION_ID" envDefault:"20"`
	ReciterID     int           `env:"QURAN_RECITER_ID" envDefault:"7"`
	Timeout       time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// Load reads envFile when it is not empty, then the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// FromMap parses cfg from vars only, ignoring the process environment.
func FromMap(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQL, BackendProxy:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of memory, sql, proxy; got %q", c.Backend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Backend == BackendSQL && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for the sql backend")
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
