// Package db manages MongoDB connections and collections.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Client wraps mongo.Client and exposes the store's collections.
type Client struct {
	// client is the underlying MongoDB connection (thread-safe, reused
	// by every store)
	client *mongo.Client

	// db holds the chat database; the users, chatRooms and chatMsgs
	// collections are accessed through it
	db *mongo.Database
}

// New connects to MongoDB using the given URL and returns a Client.
// The URL must name the database to use (e.g. mongodb://host/chat);
// when it does not, the "chat" database is used.
func New(ctx context.Context, dbURL string) (*Client, error) {
	opts := options.Client().
		ApplyURI(dbURL).
		SetConnectTimeout(10 * time.Second) // fail fast if MongoDB is unreachable

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping verifies the connection actually works before any store
	// operation depends on it
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database("chat")

	return &Client{client: client, db: db}, nil
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("users")
}

// RoomsCollection returns the chatRooms collection.
func (c *Client) RoomsCollection() *mongo.Collection {
	return c.db.Collection("chatRooms")
}

// MsgsCollection returns the chatMsgs collection.
func (c *Client) MsgsCollection() *mongo.Collection {
	return c.db.Collection("chatMsgs")
}

// Close disconnects from MongoDB. Behavior of the stores after Close is
// undefined.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Clear deletes every document from all three collections. Intended
// only for test and bootstrap use.
func (c *Client) Clear(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{
		c.UsersCollection(), c.RoomsCollection(), c.MsgsCollection(),
	} {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// CreateIndexes creates the indexes the store relies on. The unique
// indexes are the store's only uniqueness enforcement: inserts and
// updates hit them atomically, so the repositories never have to do a
// racy check-then-act of their own.
func (c *Client) CreateIndexes(ctx context.Context) error {
	// users: chatName and email must each be unique across all users
	userIndexes := []mongo.IndexModel{
		{
			Keys:    map[string]int{"chatName": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    map[string]int{"email": 1},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := c.UsersCollection().Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	// chatRooms: roomName must be unique
	roomIndex := mongo.IndexModel{
		Keys:    map[string]int{"roomName": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.RoomsCollection().Indexes().CreateOne(ctx, roomIndex); err != nil {
		return fmt.Errorf("failed to create chatRooms index: %w", err)
	}

	// chatMsgs: plain indexes backing the find filter and its primary
	// sort key (creationTime descending, newest first)
	msgIndexes := []mongo.IndexModel{
		{Keys: map[string]int{"roomId": 1}},
		{Keys: map[string]int{"userId": 1}},
		{Keys: map[string]int{"creationTime": -1}},
	}
	if _, err := c.MsgsCollection().Indexes().CreateMany(ctx, msgIndexes); err != nil {
		return fmt.Errorf("failed to create chatMsgs indexes: %w", err)
	}

	return nil
}
