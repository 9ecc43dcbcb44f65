package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeBookingConfirmation is the asynq task type for booking confirmations.
const TypeBookingConfirmation = "booking:confirmation"

// ConfirmationPayload carries everything the notification worker needs; the
// worker never reads the reservation back from the database.
type ConfirmationPayload struct {
	ReservationID string `json:"reservationId"`
	TenantID      string `json:"tenantId"`
	BarberID      string `json:"barberId"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
	Duration      int    `json:"duration"`
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
}

// NewConfirmationTask builds the asynq task for a freshly created booking.
func NewConfirmationTask(payload ConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingConfirmation, b), nil
}
