package booking

import (
	"context"

	reservationRepo "trimly/database/repository/reservation"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/services/schedule"
	"trimly/services/tenant"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingService is the write side of the reservation lifecycle.
type BookingService interface {
	CreateReservation(ctx context.Context, t *models.Tenant, req models.BookingRequest) (*models.BookingResult, error)
	CancelByToken(ctx context.Context, t *models.Tenant, reservationID, token string) error
	AdminCancel(ctx context.Context, t *models.Tenant, reservationID string) error
	Complete(ctx context.Context, t *models.Tenant, reservationID string) error
	ListDay(ctx context.Context, t *models.Tenant, date string) ([]models.Reservation, error)
}

// TaskEnqueuer is the slice of asynq.Client the writer needs; notification
// tasks are fire-and-forget and must never fail a booking.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultBookingService is the production booking writer.
type DefaultBookingService struct {
	Reservations reservationRepo.ReservationRepository
	Services     serviceRepo.ServiceRepository
	Allocator    *schedule.Allocator
	Resolver     *tenant.Resolver
	Tasks        TaskEnqueuer // optional
	Clock        schedule.Clock
	Logger       *zap.Logger
}
