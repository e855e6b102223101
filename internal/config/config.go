package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`

	IdentityURL    string `env:"IDENTITY_URL,required"`
	IdentityAPIKey string `env:"IDENTITY_API_KEY"`

	SuperAdminEmail string `env:"SUPER_ADMIN_EMAIL"`

	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"auto"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	UploadBucket      string `env:"UPLOAD_BUCKET" envDefault:"media"`
	AssetBaseURL      string `env:"ASSET_BASE_URL"`
	MaxUploadSizeMB   int    `env:"MAX_UPLOAD_SIZE_MB" envDefault:"5"`

	ListCacheTTLSeconds int    `env:"LIST_CACHE_TTL_SECONDS" envDefault:"300"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) ListCacheTTL() time.Duration {
	return time.Duration(c.ListCacheTTLSeconds) * time.Second
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

func (c *Config) Validate(isProduction bool) error {
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}

	if c.SuperAdminEmail != "" && !strings.Contains(c.SuperAdminEmail, "@") {
		return fmt.Errorf("SUPER_ADMIN_EMAIL must be an email address")
	}

	if isProduction {
		if c.IdentityAPIKey == "" {
			return fmt.Errorf("IDENTITY_API_KEY is required in production")
		}
		if c.SuperAdminEmail == "" {
			log.Warn().Msg("SUPER_ADMIN_EMAIL is empty in production: no account will be auto-confirmed on registration")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.S3Endpoint == "" {
			log.Warn().Msg("S3_ENDPOINT is empty in production: image uploads will fail")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
