package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new instance of MongoServiceRepo.
func NewMongoServiceRepo() *MongoServiceRepo {
	db := database.MongoClient.Database("trimly")
	return &MongoServiceRepo{coll: db.Collection("services")}
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, tenantID, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	filter := bson.M{"id": serviceID, "tenant_id": tenantID, "active": true}
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", serviceID, err)
	}
	return &svc, nil
}
