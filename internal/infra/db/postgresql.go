// Package db manages the PostgreSQL connection for the ledger.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/branchledger/backend/config"
)

const connectTimeout = 5 * time.Second

// Database owns the GORM handle and its underlying connection pool.
type Database struct {
	gorm *gorm.DB
}

// Connect opens a PostgreSQL connection, tunes the pool from cfg and
// verifies the server is reachable before returning.
func Connect(cfg *config.DatabaseConfig) (*Database, error) {
	g, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &Database{gorm: g}, nil
}

// DB exposes the GORM handle for dependency wiring.
func (d *Database) DB() *gorm.DB {
	return d.gorm
}

// Migrate creates or updates the schema for the given models.
func (d *Database) Migrate(models ...interface{}) error {
	if err := d.gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close drains the connection pool.
func (d *Database) Close() error {
	pool, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}
