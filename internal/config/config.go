package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	BotDebug      bool   `env:"BOT_DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// An empty RedisAddr keeps sessions in memory.
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	RedisConnectRetry time.Duration `env:"REDIS_CONNECT_RETRY" envDefault:"1m"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	PaymentDelay time.Duration `env:"PAYMENT_DELAY" envDefault:"2s"`
	ToastLimit   int           `env:"TOAST_LIMIT" envDefault:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.PaymentDelay < 0 {
		return nil, fmt.Errorf("PAYMENT_DELAY must not be negative, got %s", cfg.PaymentDelay)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return &cfg, nil
}

// RequireBot checks the settings only the Telegram front end needs.
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required to run the bot")
	}
	return nil
}
