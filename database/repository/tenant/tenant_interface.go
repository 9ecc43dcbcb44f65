package tenantRepo

import (
	"context"
	"errors"

	"trimly/models"
)

// ErrNotFound is returned when no tenant matches the given slug.
var ErrNotFound = errors.New("tenant not found")

// TenantRepository provides read access to tenant accounts. Tenants are
// provisioned out of band; this core only resolves and gates them.
type TenantRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	FindByID(ctx context.Context, id string) (*models.Tenant, error)
}
