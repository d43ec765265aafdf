package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/BuiltByShivam/smart-inventory/internal/flagx"
)

// parseFlags overlays cfg with the flags this package owns. Other flags in
// args are ignored so the command tree can parse its own.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-r", "-l", "-e"})

	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "product service base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local state database path")
	fs.StringVar(&cfg.TokenBackend, "t", cfg.TokenBackend, "reset token backend (kv|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text|json|zap)")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export directory")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
