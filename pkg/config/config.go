package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Api struct {
		BaseURL string `env:"API_BASE_URL" env-default:"http://localhost:8000"`
	}
	Session struct {
		TokenPath string `env:"SESSION_TOKEN_PATH" env-default:"./.simple-social-token"`
	}
	Telegram struct {
		Owner int64  `env:"TELEGRAM_OWNER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
