package serviceRepo

import (
	"context"
	"errors"

	"trimly/models"
)

// ErrNotFound is returned when no service matches the given tenant and id.
var ErrNotFound = errors.New("service not found")

// ServiceRepository provides read access to a tenant's service catalogue.
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, serviceID string) (*models.Service, error)
}
