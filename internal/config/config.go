package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Blob backend: file, redis or postgres.
	BlobBackend string `env:"BLOB_BACKEND" envDefault:"file"`
	BlobPath    string `env:"BLOB_PATH" envDefault:"data/leads.json"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisKey    string `env:"REDIS_KEY" envDefault:"crm-leads"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Optional AMQP mutation-event stream; disabled when empty.
	AMQPURL string `env:"AMQP_URL"`

	// Optional follow-up digest e-mail; disabled when MailHost or
	// DigestTo is empty.
	MailHost string `env:"MAIL_HOST"`
	MailPort int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser string `env:"MAIL_USER"`
	MailPass string `env:"MAIL_PASS"`
	MailFrom string `env:"MAIL_FROM" envDefault:"no-reply@leadtrack.local"`
	DigestTo string `env:"DIGEST_TO"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"30"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
