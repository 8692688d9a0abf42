// Package database owns the MongoDB client used as the document store.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MohamedTawfiq30/dmorder/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	var err error
	client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	db = client.Database(config.MongoDB())
	return ensureIndexes(ctx)
}

// Close disconnects the client. Safe to call after a failed Connect.
func Close() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

// Client exposes the raw client for session/transaction use.
func Client() *mongo.Client { return client }

// DB returns the application database handle.
func DB() *mongo.Database { return db }

// Collection returns a named collection on the application database.
func Collection(name string) *mongo.Collection {
	// Nil before Connect; lets route listing build the handler table
	// without a live database.
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// ensureIndexes creates the indexes the query paths rely on. Idempotent.
func ensureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		"sellers": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"products": {
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "productId", Value: 1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: index %s: %w", name, err)
		}
	}
	return nil
}
