package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/server/migrations"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// connection pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// OpenPostgres opens a pgx-backed pool and checks that it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

func (m *PostgresRepositoryManager) Accounts() accounts.Repository {
	return accounts.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Events() events.Repository {
	return events.NewPostgresRepository(m.db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
