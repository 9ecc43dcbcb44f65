package reservationRepo

import (
	"context"
	"errors"
	"time"

	"trimly/models"
)

var (
	// ErrNotFound is returned when no reservation matches the given id, or
	// when a status transition finds the reservation no longer in the
	// expected state.
	ErrNotFound = errors.New("reservation not found")

	// ErrDuplicateSlot is returned by Insert when another reservation already
	// holds the same (tenant, barber, date, start) tuple. This is the
	// persistence-level arbiter of the no-double-booking invariant: when two
	// requests race past the availability check, exactly one insert succeeds
	// and the loser receives this error.
	ErrDuplicateSlot = errors.New("slot already reserved")
)

// ReservationRepository persists reservations. Reservations are never
// physically deleted; cancellation and completion are status transitions.
type ReservationRepository interface {
	// FindActiveByBarberDate returns reservations for (tenant, barber, date)
	// whose status still occupies the slot (RESERVED or COMPLETED).
	FindActiveByBarberDate(ctx context.Context, tenantID, barberID, date string) ([]models.Reservation, error)

	// Insert stores a new reservation, returning ErrDuplicateSlot when the
	// unique slot index rejects it.
	Insert(ctx context.Context, reservation *models.Reservation) error

	FindByID(ctx context.Context, tenantID, id string) (*models.Reservation, error)

	// ListByDate returns all reservations for a tenant on a date, any status.
	ListByDate(ctx context.Context, tenantID, date string) ([]models.Reservation, error)

	// TransitionStatus atomically moves a reservation from one status to
	// another, stamping the transition time. Returns ErrNotFound when the
	// reservation does not exist or is not in the expected status.
	TransitionStatus(ctx context.Context, tenantID, id string, from, to models.ReservationStatus, at time.Time) error
}
