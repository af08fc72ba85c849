// Package store owns the process-wide MongoDB handle.
//
// The client is initialized lazily on first use and reused for the process
// lifetime. A failed initialization clears the cached handle so the next
// call retries instead of reusing a broken client.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brookxc/menuadmin/config"
)

const (
	connectTimeout   = 10 * time.Second
	selectionTimeout = 10 * time.Second

	// RestaurantCollection is the single collection this application owns.
	RestaurantCollection = "restaurants"
)

var (
	mu     sync.Mutex
	client *mongo.Client
)

// Client returns the shared Mongo client, connecting on first use.
func Client(ctx context.Context) (*mongo.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return client, nil
	}

	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectionTimeout)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		// client stays nil so the next call retries
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	client = c
	return client, nil
}

// Restaurants returns the restaurant collection, ensuring the createdAt
// index that backs newest-first listing exists.
func Restaurants(ctx context.Context) (*mongo.Collection, error) {
	c, err := Client(ctx)
	if err != nil {
		return nil, err
	}

	col := c.Database(config.MongoDB()).Collection(RestaurantCollection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return col, nil
}

// Ping reports whether the store is reachable. Used by /healthz.
func Ping(ctx context.Context) error {
	c, err := Client(ctx)
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Disconnect closes the shared client. Called on shutdown.
func Disconnect(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	return err
}
