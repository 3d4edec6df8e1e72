package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	// Retry the initial reachability check before handing off to the pool
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	defer conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(pool)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pool.Config().ConnConfig.User,
		pool.Config().ConnConfig.Password,
		pool.Config().ConnConfig.Host,
		pool.Config().ConnConfig.Port,
		pool.Config().ConnConfig.Database,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// InitializeSchema creates all required tables and indexes.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.Card)(nil),
		(*models.User)(nil),
		(*models.CardInstance)(nil),
	}

	for _, table := range tables {
		if _, err := db.bunDB.NewCreateTable().
			Model(table).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_card_instances_user_id ON card_instances (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_card_instances_card_id ON card_instances (card_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards (rarity)`,
	}
	for _, idx := range indexes {
		if _, err := db.bunDB.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("tables", len(tables)))
	return nil
}

func (db *DB) Close() error {
	if db.bunDB != nil {
		if err := db.bunDB.Close(); err != nil {
			return err
		}
	}
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}
