package handlers

import (
	"errors"
	"net/http"

	barberRepo "trimly/database/repository/barber"
	"trimly/middleware"
	"trimly/models"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler manages barbers' weekly working blocks.
type ScheduleHandler struct {
	Barbers barberRepo.BarberRepository
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(barbers barberRepo.BarberRepository) *ScheduleHandler {
	return &ScheduleHandler{Barbers: barbers}
}

// GetSchedule returns a barber's weekly schedule.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}

	schedule, err := h.Barbers.GetSchedule(c.Request.Context(), t.ID, c.Param("barberId"))
	if err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not Found", "barber not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to load schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// SetSchedule replaces a barber's weekly schedule after validating its
// structural invariants.
func (h *ScheduleHandler) SetSchedule(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Not Found", "unknown tenant")
		return
	}

	var input struct {
		Schedule []models.DaySchedule `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := models.ValidateSchedule(input.Schedule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid schedule", err.Error())
		return
	}

	if err := h.Barbers.UpsertSchedule(c.Request.Context(), t.ID, c.Param("barberId"), input.Schedule); err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not Found", "barber not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to store schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
