package barberRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBarberRepo implements BarberRepository using MongoDB.
type MongoBarberRepo struct {
	coll *mongo.Collection
}

// NewMongoBarberRepo constructs a new instance of MongoBarberRepo.
func NewMongoBarberRepo() *MongoBarberRepo {
	db := database.MongoClient.Database("trimly")
	repo := &MongoBarberRepo{coll: db.Collection("barbers")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("barber repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoBarberRepo) GetByID(ctx context.Context, tenantID, barberID string) (*models.Barber, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var barber models.Barber
	filter := bson.M{"id": barberID, "tenant_id": tenantID}
	if err := r.coll.FindOne(ctx, filter).Decode(&barber); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching barber with id %s: %w", barberID, err)
	}
	return &barber, nil
}

func (r *MongoBarberRepo) GetSchedule(ctx context.Context, tenantID, barberID string) ([]models.DaySchedule, error) {
	barber, err := r.GetByID(ctx, tenantID, barberID)
	if err != nil {
		return nil, err
	}
	return barber.Schedule, nil
}

func (r *MongoBarberRepo) UpsertSchedule(ctx context.Context, tenantID, barberID string, schedule []models.DaySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": barberID, "tenant_id": tenantID}
	update := bson.M{"$set": bson.M{"schedule": schedule}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating schedule for barber %s: %w", barberID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
