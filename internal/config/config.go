// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// App holds the runtime configuration of the authoring service.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"qtiforge"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:":8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" envDefault:"20s"`

	DB       DB
	Auth     Auth
	Packages Packages
	CORS     CORS
}

// DB selects the draft-bank database.
type DB struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN"`
}

// Auth stores the signing secret and the bootstrap admin credentials.
type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	AdminUser     string        `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

// Packages configures where exported archives are kept.
type Packages struct {
	BasePath string `env:"PACKAGE_BASE_PATH" envDefault:"./data/packages"`
}

// CORS holds cross-origin settings for the editor frontend.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"300"`
}

// Load reads .env if present, then parses the environment.
func Load() (*App, error) {
	_ = godotenv.Load()
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
