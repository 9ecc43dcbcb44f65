package reservationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the reservation indexes. The unique partial index on
// (tenant_id, barber_id, date, start) only covers reservations whose status
// still occupies the slot, so a cancelled reservation frees its start time
// for rebooking while the document itself is kept.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slotIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "tenant_id", Value: 1},
			{Key: "barber_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "start", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": bson.A{"RESERVED", "COMPLETED"}},
			}),
	}
	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	dayIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "date", Value: 1}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{slotIdx, idIdx, dayIdx})
	return err
}
