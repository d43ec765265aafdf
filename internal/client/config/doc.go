// Package config loads runtime configuration for the inventory client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with INVENTORY_ (INVENTORY_API_URL, ...).
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the product service
//	-d string   path of the local SQLite state database
//	-t string   reset token backend: kv or redis
//	-r string   redis address (host:port)
//	-l string   log format: text, json or zap
//	-e string   export directory
//
// # JSON schema
//
// Durations accept strings like "30m" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "database_path": "inventory.db",
//	  "token_backend": "kv",
//	  "reset_token_ttl": "30m",
//	  "low_stock_threshold": 10
//	}
package config
