// Package database manages the MongoDB client lifecycle.
//
// The client is constructed once at process start, handed to the
// repositories by the bootstrap code, and disconnected on shutdown.
// Nothing in this package is a global: the connect-once-reuse singleton
// of earlier iterations is gone on purpose.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Duvhier/jylclean-back/config"
)

// DB bundles the client and the application database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context) (*DB, error) {
	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &DB{client: client, db: client.Database(config.MongoDatabase())}, nil
}

// Database returns the application database handle.
func (d *DB) Database() *mongo.Database { return d.db }

// Ping verifies the connection is still live.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

// Close disconnects the client. Call on shutdown.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the data model relies on:
// unique username and email on users, one cart per user, and the sale
// listing index. Safe to call on every boot.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	users := d.db.Collection("users")
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "resetPasswordToken", Value: 1}}, Options: options.Index().SetSparse(true)},
	}); err != nil {
		return fmt.Errorf("database: users indexes: %w", err)
	}

	carts := d.db.Collection("carts")
	if _, err := carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("database: carts index: %w", err)
	}

	sales := d.db.Collection("sales")
	if _, err := sales.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("database: sales index: %w", err)
	}

	return nil
}
