package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the gazetteer database described by cfg
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsMemory() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsMemory() {
		// A shared-cache memory database lives only while a connection is open
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// NewMigrator returns a migrate instance bound to db. dir holds one
// subdirectory of migrations per backend ("sqlite", "postgres").
func NewMigrator(db *sqlx.DB, cfg config.DBConfig, dir string) (*migrate.Migrate, error) {
	if cfg.IsMemory() {
		// Use the open handle; an in-memory DSN cannot be reopened by URL
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("could not create sqlite driver: %w", err)
		}
		m, err := migrate.NewWithDatabaseInstance("file://"+dir+"/sqlite", "sqlite3", driver)
		if err != nil {
			return nil, fmt.Errorf("could not create migrate instance: %w", err)
		}
		return m, nil
	}

	driver, err := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir+"/postgres", "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending up migrations
func Migrate(db *sqlx.DB, cfg config.DBConfig, dir string) error {
	m, err := NewMigrator(db, cfg, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
