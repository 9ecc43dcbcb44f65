package tenantRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTenantRepo implements TenantRepository using MongoDB.
type MongoTenantRepo struct {
	coll *mongo.Collection
}

// NewMongoTenantRepo constructs a new instance of MongoTenantRepo.
func NewMongoTenantRepo() *MongoTenantRepo {
	db := database.MongoClient.Database("trimly")
	repo := &MongoTenantRepo{coll: db.Collection("tenants")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("tenant repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoTenantRepo) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&tenant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching tenant with slug %q: %w", slug, err)
	}
	return &tenant, nil
}

func (r *MongoTenantRepo) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tenant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching tenant with id %s: %w", id, err)
	}
	return &tenant, nil
}
