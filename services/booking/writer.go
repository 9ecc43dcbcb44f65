package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "trimly/database/repository/reservation"
	"trimly/models"
	"trimly/services/schedule"
	"trimly/services/tasks"
	"trimly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// CreateReservation validates the request against the tenant state and the
// current availability, then persists the reservation. The availability check
// and the insert are not atomic by themselves; the reservation collection's
// unique slot index serializes racing writers, and the duplicate-key loser is
// translated into a conflict here.
func (s *DefaultBookingService) CreateReservation(ctx context.Context, t *models.Tenant, req models.BookingRequest) (*models.BookingResult, error) {
	if err := s.Resolver.AssertActive(t); err != nil {
		return nil, NewForbidden("tenant is not accepting bookings")
	}
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, NewValidation(err.Error())
	}

	svc, err := s.Services.GetByID(ctx, t.ID, req.ServiceID)
	if err != nil {
		return nil, translateLookup(err, "service")
	}

	if err := s.Allocator.ValidateSlot(ctx, t, req.BarberID, req.ServiceID, req.Date, start); err != nil {
		return nil, translateAvailability(err)
	}

	reservation := &models.Reservation{
		ID:              uuid.New().String(),
		TenantID:        t.ID,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Start:           start,
		DurationMinutes: svc.DurationMinutes,
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientEmail:     strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		Status:          models.StatusReserved,
		CancelToken:     uuid.New().String(),
		CreatedAt:       s.now(),
	}

	if err := s.Reservations.Insert(ctx, reservation); err != nil {
		if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
			// The race loser: another request claimed the slot between our
			// availability check and the insert.
			return nil, NewConflict("slot no longer available")
		}
		s.logger().Error("reservation insert failed", zap.Error(err))
		return nil, NewInternal("failed to store reservation")
	}

	s.enqueueConfirmation(reservation)

	return &models.BookingResult{
		ReservationID: reservation.ID,
		CancelToken:   reservation.CancelToken,
	}, nil
}

// enqueueConfirmation emits the BookingCreated notification task. Delivery is
// out of scope for the booking transaction: enqueue failures are logged and
// deliberately swallowed so they can never fail or delay a booking.
func (s *DefaultBookingService) enqueueConfirmation(r *models.Reservation) {
	if s.Tasks == nil {
		return
	}
	task, err := tasks.NewConfirmationTask(tasks.ConfirmationPayload{
		ReservationID: r.ID,
		TenantID:      r.TenantID,
		BarberID:      r.BarberID,
		Date:          r.Date,
		Start:         r.Start,
		Duration:      r.DurationMinutes,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
	})
	if err != nil {
		s.logger().Warn("failed to build confirmation task", zap.String("reservationID", r.ID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		s.logger().Warn("failed to enqueue confirmation task", zap.String("reservationID", r.ID), zap.Error(err))
	}
}

func validateBookingRequest(req models.BookingRequest) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return NewValidation("client name is required")
	}
	email := strings.TrimSpace(req.ClientEmail)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return NewValidation(fmt.Sprintf("invalid email %q", req.ClientEmail))
	}
	if req.BarberID == "" || req.ServiceID == "" {
		return NewValidation("barberId and serviceId are required")
	}
	return nil
}

// translateLookup maps repository not-found errors onto coded errors.
func translateLookup(err error, entity string) error {
	if isNotFound(err) {
		return NewNotFound(entity + " not found")
	}
	return NewInternal(err.Error())
}

// translateAvailability maps allocator outcomes onto coded errors.
func translateAvailability(err error) error {
	switch {
	case errors.Is(err, schedule.ErrSlotUnavailable):
		return NewConflict("slot no longer available")
	case errors.Is(err, schedule.ErrOutsideHorizon):
		return NewValidation("date is beyond the booking horizon")
	case isNotFound(err):
		return NewNotFound("barber or service not found")
	case strings.HasPrefix(err.Error(), "invalid date"):
		return NewValidation(err.Error())
	default:
		return NewInternal(err.Error())
	}
}
