package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salon-agenda-backend/config"
	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

// GetServices lists active services, the public booking catalog.
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Where("is_active = true").Order("category, name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetStaffMembers lists active staff for the booking picker.
func GetStaffMembers(c *gin.Context) {
	var staff []models.StaffMember
	if err := config.DB.Where("is_active = true").Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// GetClients lists clients for the staff API.
func GetClients(c *gin.Context) {
	query := config.DB.Order("name")
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}
