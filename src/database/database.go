package database

import (
	"context"
	"fmt"
	"time"

	"Backend-UniClub/src/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	EventCollection       = "events"
	NewsCollection        = "news"
	OpportunityCollection = "opportunities"
	ClubCollection        = "clubs"
	UserCollection        = "users"
)

// ConnectMongoDB opens the process-wide client and verifies it with a ping.
// The client is created once at startup and shared by every request.
func ConnectMongoDB(ctx context.Context, cfg config.Mongo, logger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", zap.String("database", cfg.Database))
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique keys the data model relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "clerkId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}})},
			{Keys: bson.D{{Key: "studentId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "university", Value: 1}}},
		},
		EventCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "university", Value: 1}, {Key: "status", Value: 1}}},
		},
		NewsCollection: {
			{Keys: bson.D{{Key: "publishedDate", Value: -1}}},
		},
		ClubCollection: {
			{Keys: bson.D{{Key: "clubId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.Debug("indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}
