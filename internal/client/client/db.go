package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/client/migrations"
	"github.com/dmitrijs2005/eventportal/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded profile migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local sqlite file at dsn and migrates it. Missing
// parent directories are created.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
