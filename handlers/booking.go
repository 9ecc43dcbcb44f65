package handlers

import (
	"errors"
	"net/http"
	"strings"

	barberRepo "trimly/database/repository/barber"
	serviceRepo "trimly/database/repository/service"
	"trimly/middleware"
	"trimly/models"
	"trimly/services/booking"
	"trimly/services/schedule"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the public booking flow: availability lookup,
// reservation creation and token-based cancellation.
type BookingHandler struct {
	Allocator *schedule.Allocator
	Bookings  booking.BookingService
	Logger    *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(allocator *schedule.Allocator, bookings booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Allocator: allocator, Bookings: bookings, Logger: logger}
}

// GetAvailability returns the bookable start times for a barber, service and
// date: minutes from midnight plus an "HH:MM" rendering for display.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}

	barberID := c.Query("barberId")
	serviceID := c.Query("serviceId")
	date := c.Query("date")
	if barberID == "" || serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "barberId, serviceId and date are required")
		return
	}

	slots, err := h.Allocator.ComputeAvailability(c.Request.Context(), t, barberID, serviceID, date)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = schedule.FormatClock(s)
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
		"times": times,
	})
}

// CreateBooking creates a reservation for the resolved tenant.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.Bookings.CreateReservation(c.Request.Context(), t, req)
	if err != nil {
		RespondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelBooking cancels a reservation using its cancel token.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}

	id := c.Param("id")
	token := c.Query("token")
	if err := h.Bookings.CancelByToken(c.Request.Context(), t, id, token); err != nil {
		RespondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *BookingHandler) respondAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrOutsideHorizon):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date is beyond the booking horizon")
	case errors.Is(err, barberRepo.ErrNotFound), errors.Is(err, serviceRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not Found", "barber or service not found")
	case strings.HasPrefix(err.Error(), "invalid date"):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		h.Logger.Error("availability computation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to compute availability")
	}
}

// RespondBookingError maps a coded booking error onto its HTTP response.
func RespondBookingError(c *gin.Context, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		utils.JSONError(c, booking.HTTPStatus(err), be.Message, "")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
