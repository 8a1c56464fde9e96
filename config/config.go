package config

import (
	"strings"
	"time"

	replycraft_errors "github.com/customeros/replycraft/errors"
)

type AppConfig struct {
	APIPort            string   `env:"PORT" envDefault:"8080"`
	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RabbitMQURL        string   `env:"RABBITMQ_URL"`
}

// GeminiConfig is not validated at load time: a blank URL or key fails each
// generate request instead.
type GeminiConfig struct {
	ApiUrl      string        `env:"GEMINI_API_URL"`
	ApiKey      string        `env:"GEMINI_API_KEY"`
	HttpTimeout time.Duration `env:"GEMINI_HTTP_TIMEOUT" envDefault:"0s"`
}

type DatabaseConfig struct {
	Host            string `env:"REPLYCRAFT_POSTGRES_HOST,required"`
	Port            string `env:"REPLYCRAFT_POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"REPLYCRAFT_POSTGRES_USER,required"`
	DBName          string `env:"REPLYCRAFT_POSTGRES_DB_NAME,required"`
	Password        string `env:"REPLYCRAFT_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"REPLYCRAFT_POSTGRES_DB_MAX_CONN" envDefault:"25"`
	MaxIdleConn     int    `env:"REPLYCRAFT_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"REPLYCRAFT_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"REPLYCRAFT_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"REPLYCRAFT_POSTGRES_SSL_MODE" envDefault:"disable"`
}

type ArchiveConfig struct {
	Enabled         bool   `env:"ARCHIVE_ENABLED" envDefault:"false"`
	Provider        string `env:"ARCHIVE_PROVIDER" envDefault:"s3"`
	Bucket          string `env:"ARCHIVE_BUCKET" envDefault:"replycraft-responses"`
	AwsRegion       string `env:"ARCHIVE_AWS_REGION" envDefault:"us-east-1"`
	R2AccountID     string `env:"ARCHIVE_R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"ARCHIVE_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"ARCHIVE_ACCESS_KEY_SECRET"`
}

// Validate reports ErrGeminiNotConfigured when the endpoint or key is blank.
func (c *GeminiConfig) Validate() error {
	if c == nil || strings.TrimSpace(c.ApiUrl) == "" || strings.TrimSpace(c.ApiKey) == "" {
		return replycraft_errors.ErrGeminiNotConfigured
	}
	return nil
}
