package revisions

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// Store backends understood by OpenStore.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const defaultConnectTimeout = 5 * time.Second

// StoreConfig selects and configures the revision store backend.
type StoreConfig struct {
	Backend  string
	RedisURL string
	DSN      string
	// CacheTTL enables an in-process read cache in front of durable backends.
	CacheTTL time.Duration
}

type pinger interface {
	Ping(ctx context.Context) error
}

// OpenStore builds the configured store. When the durable backend cannot be
// opened or reached, it logs a warning and returns a MemoryStore instead, so
// callers always receive a working store. The returned bool reports whether
// the durable backend is in use.
func OpenStore(ctx context.Context, cfg StoreConfig, logger interfaces.Logger) (Store, bool) {
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" || backend == BackendMemory {
		return NewMemoryStore(), false
	}

	store, err := openDurable(ctx, backend, cfg)
	if err != nil {
		logger.Warn("revisions.store.degraded",
			"backend", backend,
			"fallback", BackendMemory,
			"error", err,
		)
		return NewMemoryStore(), false
	}

	logger.Info("revisions.store.opened", "backend", backend)
	if cfg.CacheTTL > 0 {
		return NewCachedStore(store, cfg.CacheTTL), true
	}
	return store, true
}

func openDurable(ctx context.Context, backend string, cfg StoreConfig) (Store, error) {
	pingCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	switch backend {
	case BackendRedis:
		store, err := NewRedisStoreFromURL(cfg.RedisURL, 0)
		if err != nil {
			return nil, err
		}
		if err := ping(pingCtx, store); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case BackendSQLite, BackendPostgres:
		db, err := openBunDB(backend, cfg.DSN)
		if err != nil {
			return nil, err
		}
		store := NewSQLStore(db)
		if err := ping(pingCtx, store); err != nil {
			_ = store.Close()
			return nil, err
		}
		if err := store.EnsureSchema(pingCtx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("%w: ensure schema: %v", ErrStoreUnavailable, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
}

func openBunDB(backend, dsn string) (*bun.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: %s dsn required", ErrStoreUnavailable, backend)
	}
	switch backend {
	case BackendSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	}
}

func ping(ctx context.Context, p pinger) error {
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
