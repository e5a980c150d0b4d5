// Package database holds the document store client and the repository the
// handlers query through.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds the document store connection settings.
type Config struct {
	URI          string
	Database     string
	QueryTimeout time.Duration
}

// DB wraps the mongo client and the selected database. The client pools
// connections and is safe for concurrent use.
type DB struct {
	client       *mongo.Client
	database     *mongo.Database
	queryTimeout time.Duration
}

// NewDB connects and pings the document store.
func NewDB(ctx context.Context, cfg *Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.QueryTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		client:       client,
		database:     client.Database(cfg.Database),
		queryTimeout: cfg.QueryTimeout,
	}, nil
}

// Collection returns a handle on a named collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// queryContext bounds a single store call so a slow dependency cannot pin a
// request indefinitely.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
