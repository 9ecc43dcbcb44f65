package barberRepo

import (
	"context"
	"errors"

	"trimly/models"
)

// ErrNotFound is returned when no barber matches the given tenant and id.
var ErrNotFound = errors.New("barber not found")

// BarberRepository provides access to barbers and their embedded weekly
// schedules. The schedule is mutated only by the barber or a tenant admin
// and read by the slot allocator.
type BarberRepository interface {
	GetByID(ctx context.Context, tenantID, barberID string) (*models.Barber, error)
	GetSchedule(ctx context.Context, tenantID, barberID string) ([]models.DaySchedule, error)
	UpsertSchedule(ctx context.Context, tenantID, barberID string, schedule []models.DaySchedule) error
}
