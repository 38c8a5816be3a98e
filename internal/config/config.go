package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidJournalLimit = errors.New("journal limit must be at least 1")

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis   `yaml:"redis"`
	Journal  Journal `yaml:"journal"`
	Metrics  Metrics `yaml:"metrics"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Journal bounds the redis list of board events.
type Journal struct {
	Key   string `yaml:"key" env:"JOURNAL_KEY" env-default:"board:events"`
	Limit int64  `yaml:"limit" env:"JOURNAL_LIMIT" env-default:"100"`
}

type Metrics struct {
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"cookiemilk"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if config.Journal.Limit < 1 {
		panic(fmt.Errorf("%w, got %d", ErrInvalidJournalLimit, config.Journal.Limit))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
