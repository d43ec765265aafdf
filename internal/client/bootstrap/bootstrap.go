// Package bootstrap wires the inventory client together with fx: local
// state, token storage, the product service client and store, exports, the
// application services and the REPL.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/BuiltByShivam/smart-inventory/internal/client/cli"
	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/config"
	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/ledger"
	"github.com/BuiltByShivam/smart-inventory/internal/client/registry"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/tokens"
	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
	"github.com/BuiltByShivam/smart-inventory/internal/client/session"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/client/store"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

// redisRetentionSlack is added to the ledger TTL for the Redis key expiry.
const redisRetentionSlack = time.Minute

// Module provides everything below the command layer. A *config.Config
// must be supplied.
var Module = fx.Module("inventory",
	fx.Provide(
		NewLogger,
		NewDB,
		NewStateRepository,
		NewTokenStore,
		NewLedger,
		NewRegistry,
		settings.New,
		NewSession,
		NewClient,
		NewStore,
		NewSink,
		export.NewExporter,
		NewAuthService,
		NewInventoryService,
		services.NewUserService,
	),
)

// ShellModule adds the interactive App on stdin and stdout.
var ShellModule = fx.Module("shell",
	fx.Provide(NewApp),
)

// New builds an fx application for cfg. Extra options (fx.Populate,
// fx.Invoke, replacements in tests) are appended.
func New(cfg *config.Config, opts ...fx.Option) *fx.App {
	base := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg),
		Module,
	}
	return fx.New(append(base, opts...)...)
}

func NewLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.New(cfg.LogFormat, os.Stderr)
}

func NewDB(lc fx.Lifecycle, cfg *config.Config, log logging.Logger) (*sql.DB, error) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})
	return db, nil
}

func NewStateRepository(db *sql.DB) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// NewTokenStore picks the reset-token backend named in cfg.
func NewTokenStore(lc fx.Lifecycle, cfg *config.Config, repo kv.Repository, log logging.Logger) (tokens.Store, error) {
	switch cfg.TokenBackend {
	case "", config.TokenBackendKV:
		return tokens.NewKVStore(repo), nil
	case config.TokenBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := rdb.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
				}
				log.Debug(ctx, "redis connected", "addr", cfg.RedisAddr)
				return nil
			},
			OnStop: func(context.Context) error { return rdb.Close() },
		})
		return tokens.NewRedisStore(rdb, ledger.EffectiveTTL(cfg.ResetTokenTTL)+redisRetentionSlack), nil
	default:
		return nil, fmt.Errorf("unknown token backend %q", cfg.TokenBackend)
	}
}

func NewLedger(st tokens.Store, cfg *config.Config, log logging.Logger) *ledger.Ledger {
	return ledger.New(st, log, ledger.WithTTL(cfg.ResetTokenTTL))
}

func NewRegistry(repo kv.Repository, log logging.Logger) *registry.Registry {
	return registry.New(repo, log)
}

func NewSession(repo kv.Repository, cfg *config.Config) *session.Manager {
	return session.NewManager(repo, cfg.SessionSecret, cfg.SessionTTL)
}

func NewClient(lc fx.Lifecycle, cfg *config.Config, log logging.Logger) (client.Client, error) {
	c, err := client.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return c.Close() },
	})
	return c, nil
}

func NewStore(lc fx.Lifecycle, c client.Client, log logging.Logger) *store.Store {
	s := store.New(c, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return s.Close() },
	})
	return s
}

// NewSink writes exports to S3 when a bucket is configured and to the
// export directory otherwise.
func NewSink(cfg *config.Config) export.Sink {
	if cfg.UseS3() {
		return export.NewS3Sink(export.S3Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
	return export.NewDirSink(cfg.ExportDir)
}

func NewAuthService(reg *registry.Registry, led *ledger.Ledger, sm *session.Manager, cfg *config.Config, log logging.Logger) services.AuthService {
	return services.NewAuthService(reg, led, sm, cfg.ResetLinkBase, log)
}

func NewInventoryService(st *store.Store, c client.Client, ss *settings.Service, ex *export.Exporter, cfg *config.Config, log logging.Logger) *services.InventoryService {
	return services.NewInventoryService(st, c, ss, ex, cfg.LowStockThreshold, log)
}

func NewApp(auth services.AuthService, inv *services.InventoryService, users *services.UserService, ss *settings.Service, log logging.Logger) *cli.App {
	return cli.NewApp(auth, inv, users, ss, log, os.Stdin, os.Stdout)
}
