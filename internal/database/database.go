package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"gqlblog/internal/config"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type DB struct {
	*sqlx.DB
}

func ConnectDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	dsn, err := DSN(cfg.DB)
	if err != nil {
		return nil, err
	}

	slog.Info("connecting to database",
		slog.String("driver", cfg.DB.Driver),
		slog.String("host", cfg.DB.Host),
		slog.String("database", cfg.DB.Name),
	)

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	configurePool(db, cfg.DB.ConnectionLimit)

	dbStruct := &DB{db}
	if err := dbStruct.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	slog.Info("connected to database", slog.Int("connection_limit", cfg.DB.ConnectionLimit))
	return dbStruct, nil
}

// configurePool bounds the pool; callers beyond the limit wait in
// database/sql's queue.
func configurePool(db *sqlx.DB, limit int) {
	idle := limit / 2
	if idle < 1 {
		idle = 1
	}

	db.SetMaxOpenConns(limit)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(30 * time.Minute)
}

// DSN builds the driver connection string. DB_URL wins when set.
func DSN(cfg config.DB) (string, error) {
	if cfg.URL != "" {
		return cfg.URL, nil
	}

	switch cfg.Driver {
	case "mysql":
		port := cfg.Port
		if port == "" {
			port = "3306"
		}

		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		// Report matched rather than changed rows so an update that leaves
		// values unchanged still counts as found.
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil

	case "postgres", "pgx":
		port := cfg.Port
		if port == "" {
			port = "5432"
		}

		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   net.JoinHostPort(cfg.Host, port),
			Path:   "/" + cfg.Name,
		}
		q := u.Query()
		q.Set("sslmode", cfg.SSLMode)
		u.RawQuery = q.Encode()
		return u.String(), nil

	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.DB.PingContext(ctx)
}
