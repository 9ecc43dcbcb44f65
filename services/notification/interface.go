package notification

import (
	"context"

	"trimly/services/tasks"
	"trimly/utils"

	"go.uber.org/zap"
)

// NotificationService delivers booking confirmations to clients. Delivery
// transport (email, push) lives behind this interface; the booking core only
// emits events and never waits on delivery.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, payload tasks.ConfirmationPayload) error
}

// LogNotificationService is the default implementation: it records the
// confirmation in the structured log. Real delivery backends replace it at
// wiring time.
type LogNotificationService struct{}

func (LogNotificationService) SendBookingConfirmation(_ context.Context, payload tasks.ConfirmationPayload) error {
	utils.GetLogger().Info("booking confirmation",
		zap.String("reservationID", payload.ReservationID),
		zap.String("tenantID", payload.TenantID),
		zap.String("clientEmail", payload.ClientEmail),
		zap.String("date", payload.Date),
		zap.Int("start", payload.Start),
	)
	return nil
}
