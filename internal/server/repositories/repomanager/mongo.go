package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo connects to uri and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func NewMongoRepositoryManager(client *mongo.Client, database string) *MongoRepositoryManager {
	return &MongoRepositoryManager{client: client, db: client.Database(database)}
}

func (m *MongoRepositoryManager) accounts() *accounts.MongoRepository {
	return accounts.NewMongoRepository(m.db.Collection(accounts.CollectionName))
}

func (m *MongoRepositoryManager) events() *events.MongoRepository {
	return events.NewMongoRepository(m.db.Collection(events.CollectionName))
}

func (m *MongoRepositoryManager) Accounts() accounts.Repository { return m.accounts() }

func (m *MongoRepositoryManager) Events() events.Repository { return m.events() }

// RunMigrations creates the indexes the repositories rely on.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.accounts().EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.events().EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
