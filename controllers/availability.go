package controllers

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-agenda-backend/config"
	"salon-agenda-backend/models"
	"salon-agenda-backend/services"
	"salon-agenda-backend/utils"
)

// GetAvailableSlots lists the free "HH:MM" starts for a staff member, date
// and service duration. Read-only; the booking transaction re-validates.
func GetAvailableSlots(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service_id")
		return
	}
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

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	duration := service.DurationMin
	if duration <= 0 {
		config.Log.Warn("service has no duration, using fallback for slot query",
			zap.String("service_id", service.ID.String()),
			zap.Int("fallback_min", services.FallbackDurationMin))
		duration = services.FallbackDurationMin
	}

	// A booking would occupy the first-registered cabin as well as the staff
	// member, so both busy sets must be merged or slots come back bookable
	// only on paper.
	cabinID := uuid.Nil
	var cabin models.Cabin
	if err := config.DB.Order("created_at ASC").First(&cabin).Error; err == nil {
		cabinID = cabin.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	busy, err := services.DayBusyIntervals(config.DB, staffID, cabinID, date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	slots := slices.Collect(slotGrid.Slots(date, duration, busy, time.Now().In(location)))
	if slots == nil {
		slots = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
