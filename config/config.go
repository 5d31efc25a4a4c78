package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port        string        `env:"PORT" env-default:"8080"`
	DatabaseDSN string        `env:"DATABASE_DSN" env-default:"host=localhost user=postgres password=postgres dbname=bookmanagement port=5432 sslmode=disable"`
	JWTSecret   string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"168h"` // 7 days
	UploadDir   string        `env:"UPLOAD_DIR" env-default:"uploads"`
	BaseURL     string        `env:"BASE_URL" env-default:"http://localhost:8080"`
	RateLimit   float64       `env:"RATE_LIMIT" env-default:"2"` // requests per second per IP
	RateBurst   int           `env:"RATE_BURST" env-default:"4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConnectDatabase opens the Postgres connection. TranslateError makes GORM
// surface unique-index violations as gorm.ErrDuplicatedKey, which the
// storage layer maps to storage.ErrDuplicate.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
}
