package implementation

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the indexes the repositories query on. Safe to run repeatedly.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		devicesCollection: {
			{Keys: bson.D{{Key: "hardware_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		readingsCollection: {
			{Keys: bson.D{{Key: "device_id", Value: 1}, {Key: "time", Value: -1}}},
			{Keys: bson.D{{Key: "position", Value: "2dsphere"}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
