package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "INVENTORY"

// parseEnv overlays cfg with INVENTORY_* environment variables.
func parseEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	strings := map[string]*string{
		"api_url":          &cfg.APIBaseURL,
		"database_path":    &cfg.DatabasePath,
		"token_backend":    &cfg.TokenBackend,
		"redis_addr":       &cfg.RedisAddr,
		"reset_link_base":  &cfg.ResetLinkBase,
		"session_secret":   &cfg.SessionSecret,
		"log_format":       &cfg.LogFormat,
		"export_dir":       &cfg.ExportDir,
		"s3_bucket":        &cfg.S3Bucket,
		"s3_region":        &cfg.S3Region,
		"s3_base_endpoint": &cfg.S3BaseEndpoint,
		"s3_access_key":    &cfg.S3AccessKey,
		"s3_secret_key":    &cfg.S3SecretKey,
	}
	for key, dst := range strings {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if v.IsSet("request_timeout") {
		d, err := positiveDuration(v.GetString("request_timeout"))
		if err != nil {
			return fmt.Errorf("INVENTORY_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v.IsSet("reset_token_ttl") {
		d, err := positiveDuration(v.GetString("reset_token_ttl"))
		if err != nil {
			return fmt.Errorf("INVENTORY_RESET_TOKEN_TTL: %w", err)
		}
		cfg.ResetTokenTTL = d
	}
	if v.IsSet("low_stock_threshold") {
		cfg.LowStockThreshold = v.GetInt("low_stock_threshold")
	}
	return nil
}

func positiveDuration(s string) (time.Duration, error) {
	d, err := parseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}
