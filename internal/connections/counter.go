package connections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibenet_backend/internal/config"
	"vibenet_backend/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const StatusAccepted = "accepted"

// Counter reports how many accepted connections a user has.
// Implementations never fail: an unknown user or a backend fault counts 0.
type Counter interface {
	CountAccepted(ctx context.Context, username string) int
}

// Connection is one entry of a user's connection document.
type Connection struct {
	UserID                string    `bson:"userId"`
	ConnectionStartedDate time.Time `bson:"connectionStartedDate"`
	Status                string    `bson:"status"`
}

// UserConnections is the per-user document keyed by username.
type UserConnections struct {
	ID          string       `bson:"_id"`
	Connections []Connection `bson:"connections"`
	LastUpdated time.Time    `bson:"lastUpdated"`
}

// Accepted counts entries whose status is "accepted".
func (u *UserConnections) Accepted() int {
	if u == nil {
		return 0
	}
	n := 0
	for _, c := range u.Connections {
		if c.Status == StatusAccepted {
			n++
		}
	}
	return n
}

// MongoCounter reads connection documents from MongoDB.
type MongoCounter struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoCounter(ctx context.Context, cfg config.MongoConfig) (*MongoCounter, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoCounter{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *MongoCounter) CountAccepted(ctx context.Context, username string) int {
	var doc UserConnections
	err := m.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Connection count unavailable", "username", username, "error", err.Error())
		}
		return 0
	}
	return doc.Accepted()
}

func (m *MongoCounter) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// StaticCounter returns a fixed count per username. Used when no document
// store is configured, and in tests.
type StaticCounter map[string]int

func (s StaticCounter) CountAccepted(_ context.Context, username string) int {
	return s[username]
}
