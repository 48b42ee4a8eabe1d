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

type MongoUserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database, timeout time.Duration) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection), timeout: timeout}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *lscmodels.User) (*lscmodels.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := userDocument{
		FullName:     user.FullName,
		Email:        lscmodels.NormalizeEmail(user.Email),
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, interfaces.ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toModel(), nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*lscmodels.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: lscmodels.NormalizeEmail(email)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}
