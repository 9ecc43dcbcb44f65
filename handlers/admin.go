package handlers

import (
	"net/http"

	"trimly/middleware"
	"trimly/services/booking"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the tenant dashboard's reservation views and actions.
type AdminHandler struct {
	Bookings booking.BookingService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(bookings booking.BookingService) *AdminHandler {
	return &AdminHandler{Bookings: bookings}
}

// ListReservations returns every reservation for the tenant on a date.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date is required")
		return
	}

	reservations, err := h.Bookings.ListDay(c.Request.Context(), t, date)
	if err != nil {
		RespondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "reservations": reservations})
}

// CompleteReservation marks a reservation as served.
func (h *AdminHandler) CompleteReservation(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}
	if err := h.Bookings.Complete(c.Request.Context(), t, c.Param("id")); err != nil {
		RespondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// CancelReservation cancels a reservation on behalf of the tenant staff.
func (h *AdminHandler) CancelReservation(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}
	if err := h.Bookings.AdminCancel(c.Request.Context(), t, c.Param("id")); err != nil {
		RespondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
