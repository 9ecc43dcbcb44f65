package booking

import (
	"context"
	"errors"

	barberRepo "trimly/database/repository/barber"
	reservationRepo "trimly/database/repository/reservation"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

func isNotFound(err error) bool {
	return errors.Is(err, reservationRepo.ErrNotFound) ||
		errors.Is(err, barberRepo.ErrNotFound) ||
		errors.Is(err, serviceRepo.ErrNotFound)
}

// CancelByToken cancels a reservation on behalf of the client holding its
// cancel token. Works for suspended tenants too: clients may always back out.
func (s *DefaultBookingService) CancelByToken(ctx context.Context, t *models.Tenant, reservationID, token string) error {
	reservation, err := s.Reservations.FindByID(ctx, t.ID, reservationID)
	if err != nil {
		return translateLookup(err, "reservation")
	}
	if token == "" || reservation.CancelToken != token {
		utils.SecurityEvent("cancel_token_mismatch",
			zap.String("tenantID", t.ID),
			zap.String("reservationID", reservationID),
		)
		return NewForbidden("invalid cancel token")
	}
	return s.transition(ctx, t, reservationID, models.StatusReserved, models.StatusCancelled)
}

// AdminCancel cancels a reservation on behalf of a barber or tenant admin.
func (s *DefaultBookingService) AdminCancel(ctx context.Context, t *models.Tenant, reservationID string) error {
	return s.transition(ctx, t, reservationID, models.StatusReserved, models.StatusCancelled)
}

// Complete marks a reservation as served.
func (s *DefaultBookingService) Complete(ctx context.Context, t *models.Tenant, reservationID string) error {
	return s.transition(ctx, t, reservationID, models.StatusReserved, models.StatusCompleted)
}

func (s *DefaultBookingService) transition(ctx context.Context, t *models.Tenant, reservationID string, from, to models.ReservationStatus) error {
	err := s.Reservations.TransitionStatus(ctx, t.ID, reservationID, from, to, s.now())
	if err == nil {
		return nil
	}
	if errors.Is(err, reservationRepo.ErrNotFound) {
		// Either an unknown id or a reservation no longer in the expected
		// status; distinguish so the caller gets a meaningful outcome.
		if _, findErr := s.Reservations.FindByID(ctx, t.ID, reservationID); findErr == nil {
			return NewConflict("reservation is not in the " + string(from) + " state")
		}
		return NewNotFound("reservation not found")
	}
	s.logger().Error("reservation transition failed",
		zap.String("reservationID", reservationID),
		zap.String("to", string(to)),
		zap.Error(err),
	)
	return NewInternal("failed to update reservation")
}

// ListDay returns every reservation for the tenant on a date, for the admin
// dashboard.
func (s *DefaultBookingService) ListDay(ctx context.Context, t *models.Tenant, date string) ([]models.Reservation, error) {
	reservations, err := s.Reservations.ListByDate(ctx, t.ID, date)
	if err != nil {
		return nil, NewInternal(err.Error())
	}
	return reservations, nil
}
