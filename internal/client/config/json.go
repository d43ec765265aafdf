package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BuiltByShivam/smart-inventory/internal/flagx"
	"github.com/BuiltByShivam/smart-inventory/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Zero values mean "not
// set" and leave the current value in place.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	DatabasePath      string         `json:"database_path"`
	TokenBackend      string         `json:"token_backend"`
	RedisAddr         string         `json:"redis_addr"`
	ResetTokenTTL     timex.Duration `json:"reset_token_ttl"`
	ResetLinkBase     string         `json:"reset_link_base"`
	SessionSecret     string         `json:"session_secret"`
	SessionTTL        timex.Duration `json:"session_ttl"`
	LowStockThreshold *int           `json:"low_stock_threshold"`
	LogFormat         string         `json:"log_format"`
	ExportDir         string         `json:"export_dir"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.TokenBackend, jc.TokenBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.ResetLinkBase, jc.ResetLinkBase)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResetTokenTTL.Duration > 0 {
		cfg.ResetTokenTTL = jc.ResetTokenTTL.Duration
	}
	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.LowStockThreshold != nil {
		cfg.LowStockThreshold = *jc.LowStockThreshold
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
