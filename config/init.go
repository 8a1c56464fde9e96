package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	GeminiConfig   *GeminiConfig
	DatabaseConfig *DatabaseConfig
	ArchiveConfig  *ArchiveConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
}

func newConfig() *Config {
	return &Config{
		AppConfig:      &AppConfig{},
		GeminiConfig:   &GeminiConfig{},
		DatabaseConfig: &DatabaseConfig{},
		ArchiveConfig:  &ArchiveConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
	}
}

func InitConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	return ParseConfig()
}

// ParseConfig reads the configuration from the process environment only.
func ParseConfig() (*Config, error) {
	config := newConfig()

	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(err, "error loading replycraft config")
	}

	return config, nil
}
