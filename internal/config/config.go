package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, parsed from environment variables.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"carrental"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET" envDefault:""`

	// APIBaseURL is the externally visible base URL of this API, used when
	// resolving relative image paths into absolute URLs for reports.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000/api"`

	// UploadDir is where uploaded car/user images are stored on disk.
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// MenuGuestMode controls what an unauthenticated client gets from the
	// menu endpoint: "login" for a single login entry, "empty" for no entries.
	MenuGuestMode string `env:"MENU_GUEST_MODE" envDefault:"login"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:5174"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}
