package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salon-agenda-backend/config"
	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff member and returns a session token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.StaffMember
	if err := config.DB.Where("email = ? AND is_active = true", input.Email).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, staff.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(staff.ID.String(), staff.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&staff).Update("last_login", now)

	c.JSON(http.StatusOK, gin.H{"token": token, "staff": staff})
}

// Me returns the authenticated staff member.
func Me(c *gin.Context) {
	staffID, exists := c.Get("staffId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Staff ID not found in context")
		return
	}

	var staff models.StaffMember
	if err := config.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, staff)
}
