// Package repomanager vends the repositories for the configured store and
// owns its schema setup: goose migrations for PostgreSQL, indexes for MongoDB.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/eventportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Events() events.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
