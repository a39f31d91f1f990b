package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/migrations"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", dsn, err)
	}
	return db, nil
}

// StorageOptions selects and addresses the key/value backend.
type StorageOptions struct {
	Backend     string
	DSN         string // SQLite path
	RedisAddr   string // host:port or redis:// URL
	RedisPrefix string
}

// Storage is an opened key/value backend.
type Storage struct {
	Metadata metadata.Repository
	close    func() error
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens the backend named in opts. An empty backend means SQLite.
func OpenStorage(ctx context.Context, opts StorageOptions) (*Storage, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		db, err := InitDatabase(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return &Storage{Metadata: metadata.NewSQLiteRepository(db), close: db.Close}, nil

	case BackendRedis:
		cli, err := NewRedisClient(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = metadata.DefaultRedisPrefix
		}
		return &Storage{Metadata: metadata.NewRedisRepository(cli, prefix), close: cli.Close}, nil

	case BackendMemory:
		return &Storage{Metadata: metadata.NewMemoryRepository()}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		o, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis address: %w", err)
		}
		opts = o
	} else {
		opts = &redis.Options{Addr: addr}
	}

	cli := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrUnavailable, addr, err)
	}
	return cli, nil
}
