package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new instance of MongoReservationRepo.
func NewMongoReservationRepo() *MongoReservationRepo {
	db := database.MongoClient.Database("trimly")
	repo := &MongoReservationRepo{coll: db.Collection("reservations")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("reservation repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoReservationRepo) FindActiveByBarberDate(ctx context.Context, tenantID, barberID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tenant_id": tenantID,
		"barber_id": barberID,
		"date":      date,
		"status":    bson.M{"$in": []models.ReservationStatus{models.StatusReserved, models.StatusCompleted}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return reservations, nil
}

func (r *MongoReservationRepo) Insert(ctx context.Context, reservation *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, reservation); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

func (r *MongoReservationRepo) FindByID(ctx context.Context, tenantID, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reservation models.Reservation
	filter := bson.M{"id": id, "tenant_id": tenantID}
	if err := r.coll.FindOne(ctx, filter).Decode(&reservation); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation with id %s: %w", id, err)
	}
	return &reservation, nil
}

func (r *MongoReservationRepo) ListByDate(ctx context.Context, tenantID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tenant_id": tenantID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "barber_id", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return reservations, nil
}

func (r *MongoReservationRepo) TransitionStatus(ctx context.Context, tenantID, id string, from, to models.ReservationStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to}
	switch to {
	case models.StatusCancelled:
		set["cancelled_at"] = at
	case models.StatusCompleted:
		set["completed_at"] = at
	}

	filter := bson.M{"id": id, "tenant_id": tenantID, "status": from}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
