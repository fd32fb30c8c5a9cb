package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
)

func newBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(db, zap.NewNop(), time.UTC, PointsPerEuro{})
}

func baseInput(svc models.Service, staff models.StaffMember) BookingInput {
	return BookingInput{
		ServiceID:   svc.ID,
		StaffID:     staff.ID,
		Date:        "2030-05-20",
		Time:        "11:00",
		ClientName:  "Laura Pérez",
		ClientPhone: "+34600111222",
		Origin:      OriginOnline,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	appt, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, staff))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, appt.StartTime.Add(30*time.Minute), appt.EndTime)
	assert.True(t, strings.HasPrefix(appt.Notes, "[online]"))
	assert.True(t, appt.TotalPrice.Equal(decimal.NewFromInt(20)),
		"total %s", appt.TotalPrice)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appt.ID).Error)
	assert.Nil(t, stored.ReminderSentAt)
}

func TestCreateBooking_ReusesClientByPhone(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")
	existing := seedClient(t, db, "Laura Pérez", "+34600111222")

	appt, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, staff))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, appt.ClientID)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "booking must not duplicate the client")
}

func TestCreateBooking_InsufficientStockAbortsEverything(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	product := models.Product{Name: "Champú", Price: decimal.NewFromInt(5), Stock: 1}
	require.NoError(t, db.Create(&product).Error)

	in := baseInput(svc, staff)
	in.Products = []ProductLineInput{{ProductID: product.ID, Quantity: 2}}

	_, err := newBookingService(db).CreateBooking(context.Background(), in)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	var apptCount int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&apptCount).Error)
	assert.EqualValues(t, 0, apptCount, "no appointment may survive a failed booking")

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 1, stored.Stock, "stock must not be decremented on failure")
}

func TestCreateBooking_ProductLinesAddToTotal(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	product := models.Product{Name: "Champú", Price: decimal.NewFromInt(5), Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	in := baseInput(svc, staff)
	in.Products = []ProductLineInput{{ProductID: product.ID, Quantity: 2}}

	appt, err := newBookingService(db).CreateBooking(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, appt.TotalPrice.Equal(decimal.NewFromInt(30)), "total %s", appt.TotalPrice)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 8, stored.Stock)

	var lines []models.AppointmentProduct
	require.NoError(t, db.Where("appointment_id = ?", appt.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	first, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, staff))
	require.NoError(t, err)

	// Overlaps 11:00-11:30.
	in := baseInput(svc, staff)
	in.Time = "11:15"
	in.ClientPhone = "+34600999888"

	_, err = newBookingService(db).CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// A cancelled appointment frees the slot.
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("id = ?", first.ID).
		Update("status", models.StatusCancelled).Error)

	_, err = newBookingService(db).CreateBooking(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateBooking_CabinConflict(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	marta := seedStaff(t, db, "marta")
	carlos := seedStaff(t, db, "carlos")
	seedCabin(t, db, "Cabina 1")

	_, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, marta))
	require.NoError(t, err)

	// Different staff, same time, but the single cabin is occupied.
	in := baseInput(svc, carlos)
	in.ClientPhone = "+34600999888"

	_, err = newBookingService(db).CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	db := newTestDB(t)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	in := baseInput(models.Service{}, staff)
	in.ServiceID = staff.ID // some uuid that is not a service

	_, err := newBookingService(db).CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateBooking_NoCabinRegistered(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")

	_, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, staff))
	assert.ErrorIs(t, err, ErrCabinNotFound)
}

func TestCreateBooking_InvalidPhone(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	in := baseInput(svc, staff)
	in.ClientPhone = "not-a-phone"

	_, err := newBookingService(db).CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestCreateBooking_MissingDurationFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 0, 20) // broken reference data
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	appt, err := newBookingService(db).CreateBooking(context.Background(), baseInput(svc, staff))
	require.NoError(t, err)
	assert.Equal(t, appt.StartTime.Add(FallbackDurationMin*time.Minute), appt.EndTime)
}

func TestCreateBooking_LoyaltyRedemption(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	client := seedClient(t, db, "Laura Pérez", "+34600111222")
	require.NoError(t, db.Model(&client).Update("loyalty_points", 250).Error)

	in := baseInput(svc, staff)
	in.RedeemPoints = true

	appt, err := newBookingService(db).CreateBooking(context.Background(), in)
	require.NoError(t, err)

	// 250 points = two redeemable blocks = 10 off.
	assert.True(t, appt.TotalPrice.Equal(decimal.NewFromInt(10)), "total %s", appt.TotalPrice)

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", client.ID).Error)
	assert.Equal(t, 50, stored.LoyaltyPoints)
}

// overspendingPolicy claims a discount worth more points than any client
// holds, standing in for a concurrent redemption that already spent them.
type overspendingPolicy struct{}

func (overspendingPolicy) Redeem(*models.Client) (decimal.Decimal, int) {
	return decimal.NewFromInt(10), 1000
}

func TestCreateBooking_LoyaltyRedemptionNeverOverspends(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	client := seedClient(t, db, "Laura Pérez", "+34600111222")
	require.NoError(t, db.Model(&client).Update("loyalty_points", 250).Error)

	in := baseInput(svc, staff)
	in.RedeemPoints = true

	booking := NewBookingService(db, zap.NewNop(), time.UTC, overspendingPolicy{})
	appt, err := booking.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	// The guarded decrement matched no row, so no discount and no spend.
	assert.True(t, appt.TotalPrice.Equal(decimal.NewFromInt(20)), "total %s", appt.TotalPrice)

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", client.ID).Error)
	assert.Equal(t, 250, stored.LoyaltyPoints)
}

func TestCreateBooking_InvalidDate(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, 30, 20)
	staff := seedStaff(t, db, "marta")
	seedCabin(t, db, "Cabina 1")

	in := baseInput(svc, staff)
	in.Date = "20-05-2030"

	_, err := newBookingService(db).CreateBooking(context.Background(), in)
	assert.True(t, errors.Is(err, ErrInvalidDateTime))
}
