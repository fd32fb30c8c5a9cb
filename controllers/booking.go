package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salon-agenda-backend/services"
	"salon-agenda-backend/utils"
)

type ProductLineInput struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CreateBookingInput defines the expected JSON structure for a public booking
type CreateBookingInput struct {
	ServiceID    uuid.UUID          `json:"service_id" binding:"required"`
	StaffID      uuid.UUID          `json:"staff_id" binding:"required"`
	Date         string             `json:"date" binding:"required"`
	Time         string             `json:"time" binding:"required"`
	ClientName   string             `json:"client_name" binding:"required"`
	ClientPhone  string             `json:"client_phone" binding:"required"`
	ClientEmail  string             `json:"client_email"`
	Notes        string             `json:"notes"`
	Products     []ProductLineInput `json:"products"`
	RedeemPoints bool               `json:"redeem_points"`
}

// CreateBooking books a slot for a public (online) client.
func CreateBooking(c *gin.Context) {
	createBooking(c, services.OriginOnline)
}

// CreateStaffBooking books a walk-in through the same transaction, from the
// authenticated staff API.
func CreateStaffBooking(c *gin.Context) {
	createBooking(c, services.OriginStaff)
}

func createBooking(c *gin.Context, origin string) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	in := services.BookingInput{
		ServiceID:    input.ServiceID,
		StaffID:      input.StaffID,
		Date:         input.Date,
		Time:         input.Time,
		ClientName:   input.ClientName,
		ClientPhone:  input.ClientPhone,
		ClientEmail:  input.ClientEmail,
		Notes:        input.Notes,
		RedeemPoints: input.RedeemPoints,
		Origin:       origin,
	}
	for _, p := range input.Products {
		in.Products = append(in.Products, services.ProductLineInput{ProductID: p.ID, Quantity: p.Quantity})
	}

	appointment, err := bookingSvc.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "appointment": appointment})
}

func respondBookingError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrStaffNotFound),
		errors.Is(err, services.ErrCabinNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSlotTaken):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &stockErr):
		utils.RespondWithError(c, http.StatusConflict, stockErr.Error())
	case errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidDateTime),
		errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
	}
}
