package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"reservas/internal/db/migrations"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type DBConfig struct {
	Driver  string
	URL     string
	Tracing bool
}

// DB is the process-wide store handle. It is opened once at startup, shared by every
// repository and closed at shutdown.
type DB struct {
	*sqlx.DB
	Driver string
}

// Open connects to the configured database, checks the connection and applies migrations.
func Open(ctx context.Context, cfg DBConfig) (*DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("database url is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if cfg.Tracing {
		sqlDB, err = xray.SQLContext(driver, cfg.URL)
	} else {
		sqlDB, err = sql.Open(driver, cfg.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	if driver == "sqlite" {
		// A single connection keeps in-memory databases alive and serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	conn := sqlx.NewDb(sqlDB, driver)
	if err := migrations.Apply(ctx, conn, driver); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Printf("DB connected successfully (%s)", driver)
	return &DB{DB: conn, Driver: driver}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
