package config

import (
	"fmt"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string `env:"SERVER_PORT" envDefault:"8080"`
	MySQLDSN      string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/spendlog?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"change-me"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

// Load reads an optional .env file and builds Config from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
