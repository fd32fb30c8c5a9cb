package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"salon-agenda-backend/config"
	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

// GetAppointments lists a staff member's appointments for one day.
func GetAppointments(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff_id")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), location)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	dayStart := utils.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := config.DB.Preload("Client").Preload("Service").Preload("Cabin").
		Where("staff_id = ? AND start_time >= ? AND start_time < ?", staffID, dayStart, dayEnd).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointmentStatusInput defines the expected JSON structure
type UpdateAppointmentStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled paid"`
}

// UpdateAppointmentStatus applies a manual transition from the staff API.
// Transitions are monotonic; terminal appointments reject every change.
func UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !appointment.Status.CanTransitionTo(input.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot change status from "+string(appointment.Status)+" to "+string(input.Status))
		return
	}

	// Conditional on the status we read, same guard the webhook path uses.
	res := config.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, appointment.Status).
		Update("status", input.Status)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusConflict, "Appointment was updated concurrently, reload and retry")
		return
	}

	appointment.Status = input.Status
	c.JSON(http.StatusOK, appointment)
}
