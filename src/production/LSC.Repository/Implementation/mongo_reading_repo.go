package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoReadingRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoReadingRepository creates a new MongoDB reading repository
func NewMongoReadingRepository(db *mongo.Database, timeout time.Duration) *MongoReadingRepository {
	return &MongoReadingRepository{coll: db.Collection(readingsCollection), timeout: timeout}
}

func (r *MongoReadingRepository) ListReadings(ctx context.Context, deviceID string) ([]lscmodels.Reading, error) {
	oid, err := primitive.ObjectIDFromHex(deviceID)
	if err != nil {
		return []lscmodels.Reading{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "device_id", Value: oid}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find readings: %w", err)
	}
	var docs []readingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}

	readings := make([]lscmodels.Reading, 0, len(docs))
	for _, doc := range docs {
		readings = append(readings, doc.toModel())
	}
	return readings, nil
}

func (r *MongoReadingRepository) GetLatestReading(ctx context.Context, deviceID string) (*lscmodels.Reading, error) {
	oid, err := primitive.ObjectIDFromHex(deviceID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "time", Value: -1}})
	var doc readingDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "device_id", Value: oid}}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest reading: %w", err)
	}
	reading := doc.toModel()
	return &reading, nil
}

func (r *MongoReadingRepository) InsertReading(ctx context.Context, reading *lscmodels.Reading) (*lscmodels.Reading, error) {
	oid, err := primitive.ObjectIDFromHex(reading.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("insert reading: invalid device id %q", reading.DeviceID)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := newReadingDocument(oid, reading)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert reading: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	created := doc.toModel()
	return &created, nil
}

type latestPositionDocument struct {
	DeviceID primitive.ObjectID `bson:"_id"`
	Position geoPoint           `bson:"position"`
}

// LatestPositions runs one aggregation: newest reading per device, grouped by device_id.
func (r *MongoReadingRepository) LatestPositions(ctx context.Context, deviceIDs []string) (map[string]lscmodels.Position, error) {
	positions := make(map[string]lscmodels.Position, len(deviceIDs))

	oids := make([]primitive.ObjectID, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return positions, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "device_id", Value: bson.D{{Key: "$in", Value: oids}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "device_id", Value: 1}, {Key: "time", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$device_id"},
			{Key: "position", Value: bson.D{{Key: "$first", Value: "$position"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate latest positions: %w", err)
	}
	var docs []latestPositionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode latest positions: %w", err)
	}

	for _, doc := range docs {
		positions[doc.DeviceID.Hex()] = fromGeoPoint(doc.Position)
	}
	return positions, nil
}
