package barberRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for barber lookups within a tenant.
func (r *MongoBarberRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.coll.Indexes().CreateOne(ctx, idIdx)
	return err
}
