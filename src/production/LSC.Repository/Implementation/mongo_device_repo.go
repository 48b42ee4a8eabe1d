package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDeviceRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoDeviceRepository creates a new MongoDB device repository
func NewMongoDeviceRepository(db *mongo.Database, timeout time.Duration) *MongoDeviceRepository {
	return &MongoDeviceRepository{coll: db.Collection(devicesCollection), timeout: timeout}
}

func (r *MongoDeviceRepository) ListDevices(ctx context.Context) ([]lscmodels.Device, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find devices: %w", err)
	}
	var docs []deviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}

	devices := make([]lscmodels.Device, 0, len(docs))
	for _, doc := range docs {
		devices = append(devices, doc.toModel())
	}
	return devices, nil
}

func (r *MongoDeviceRepository) GetDevice(ctx context.Context, deviceID string) (*lscmodels.Device, error) {
	oid, err := primitive.ObjectIDFromHex(deviceID)
	if err != nil {
		return nil, interfaces.ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *MongoDeviceRepository) GetDeviceByHardwareID(ctx context.Context, hardwareID string) (*lscmodels.Device, error) {
	return r.findOne(ctx, bson.D{{Key: "hardware_id", Value: hardwareID}})
}

func (r *MongoDeviceRepository) findOne(ctx context.Context, filter bson.D) (*lscmodels.Device, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc deviceDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("find device: %w", err)
	}
	device := doc.toModel()
	return &device, nil
}

func (r *MongoDeviceRepository) CreateDevice(ctx context.Context, device *lscmodels.Device) (*lscmodels.Device, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := deviceDocument{
		Label:          device.Label,
		HardwareID:     device.HardwareID,
		ActivationCode: device.ActivationCode,
		Active:         device.Active,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, interfaces.ErrDuplicate
		}
		return nil, fmt.Errorf("insert device: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	created := doc.toModel()
	return &created, nil
}

func (r *MongoDeviceRepository) SetActive(ctx context.Context, deviceID string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(deviceID)
	if err != nil {
		return interfaces.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "active", Value: active}}}},
	)
	if err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
