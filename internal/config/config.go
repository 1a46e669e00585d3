package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"development"`
	Port           string `env:"PORT" envDefault:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres dbname=corrector port=5432 sslmode=disable"`

	// Upload pipeline settings. The directory is injected everywhere it is
	// needed so tests can redirect it to a scratch location.
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadSizeMB int64  `env:"MAX_UPLOAD_SIZE_MB" envDefault:"10"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// MaxUploadBytes is the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadSizeMB * 1024 * 1024
}
