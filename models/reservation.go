package models

import "time"

// ReservationStatus is the lifecycle state of a reservation. Reservations are
// never deleted; cancellation and completion are soft transitions.
type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "RESERVED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation represents a confirmed booking of a barber's time slot.
// For a given (tenant, barber, date) no two reservations with status RESERVED
// or COMPLETED may overlap; the reservations collection carries a unique
// partial index on (tenant_id, barber_id, date, start) enforcing the start
// uniqueness half of that invariant.
type Reservation struct {
	ID              string            `bson:"id" json:"id"`
	TenantID        string            `bson:"tenant_id" json:"tenant_id"`
	BarberID        string            `bson:"barber_id" json:"barber_id"`
	ServiceID       string            `bson:"service_id" json:"service_id"`
	Date            string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start           int               `bson:"start" json:"start"`
	DurationMinutes int               `bson:"duration_minutes" json:"duration_minutes"`
	ClientName      string            `bson:"client_name" json:"client_name"`
	ClientEmail     string            `bson:"client_email" json:"client_email"`
	Status          ReservationStatus `bson:"status" json:"status"`
	CancelToken     string            `bson:"cancel_token" json:"-"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	CancelledAt     *time.Time        `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time        `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// End returns the exclusive end minute of the reservation interval.
func (r *Reservation) End() int {
	return r.Start + r.DurationMinutes
}

// Occupies reports whether the reservation still claims its interval.
func (r *Reservation) Occupies() bool {
	return r.Status == StatusReserved || r.Status == StatusCompleted
}

// BookingRequest is the public payload for creating a reservation.
type BookingRequest struct {
	BarberID    string `json:"barberId" binding:"required"`
	ServiceID   string `json:"serviceId" binding:"required"`
	Date        string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime   string `json:"startTime" binding:"required"` // "HH:MM"
	ClientName  string `json:"clientName" binding:"required"`
	ClientEmail string `json:"clientEmail" binding:"required"`
}

// BookingResult is returned to the client on a successful booking. The cancel
// token is the only credential needed to cancel a public reservation.
type BookingResult struct {
	ReservationID string `json:"reservationId"`
	CancelToken   string `json:"cancelToken"`
}
