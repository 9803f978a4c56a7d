package db

import (
	"context"
	"database/sql"
	"fmt"

	"coldstore/internal/db/migrations"

	"github.com/pressly/goose/v3"
)

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

var gooseStatus = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.StatusContext(ctx, db, dir, opts...)
}

func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// Migrate applies every pending schema migration.
func Migrate(ctx context.Context, c *Conn) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrationStatus logs the state of every migration through goose.
func MigrationStatus(ctx context.Context, c *Conn) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	if err := setupGoose(); err != nil {
		return err
	}
	return gooseStatus(ctx, db, ".")
}
