package config

import (
	"os"
	"time"
)

// Token storage backends for the password-reset ledger.
const (
	TokenBackendKV    = "kv"
	TokenBackendRedis = "redis"
)

// Config holds runtime settings for the inventory client.
//
// Units: RequestTimeout, ResetTokenTTL and SessionTTL are time.Duration values.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	DatabasePath      string
	TokenBackend      string
	RedisAddr         string
	ResetTokenTTL     time.Duration
	ResetLinkBase     string
	SessionSecret     string
	SessionTTL        time.Duration
	LowStockThreshold int
	LogFormat         string
	ExportDir         string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
	S3AccessKey       string
	S3SecretKey       string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "inventory.db"
	c.TokenBackend = TokenBackendKV
	c.RedisAddr = "localhost:6379"
	c.ResetTokenTTL = 30 * time.Minute
	c.ResetLinkBase = "http://localhost:5173"
	c.SessionSecret = "dev-session-secret"
	c.SessionTTL = 12 * time.Hour
	c.LowStockThreshold = 10
	c.LogFormat = "text"
	c.ExportDir = "exports"
	c.S3Region = "us-east-1"
}

// UseS3 reports whether exports go to an S3-compatible bucket.
func (c *Config) UseS3() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, then an optional JSON file, then
// INVENTORY_* environment variables, then command-line flags. Later sources
// win.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	return load(args)
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
