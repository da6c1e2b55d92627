package config

import (
	"fmt"
)

// ValidateConfig checks that the loaded configuration is usable. Production
// is strict; development and test fill in a throwaway JWT secret.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database host, port, user and name are required")
	}
	if cfg.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1")
	}
	if cfg.RateLimit < 1 {
		return fmt.Errorf("rate limit must be at least 1")
	}

	if cfg.JWTSecret == "" {
		if IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}

	if IsProduction() && cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}

	if cfg.UseS3 {
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required when MEDIA_STORAGE=s3")
		}
		if cfg.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required when MEDIA_STORAGE=s3")
		}
	}

	return nil
}
