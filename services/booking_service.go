package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

// Services with a missing duration fall back to this, but the fallback is a
// data-integrity problem and is logged as such wherever it applies.
const FallbackDurationMin = 30

const (
	OriginOnline = "online"
	OriginStaff  = "staff"
)

type ProductLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type BookingInput struct {
	ServiceID uuid.UUID
	StaffID   uuid.UUID
	Date      string // "2006-01-02"
	Time      string // "15:04"

	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string

	Products     []ProductLineInput
	RedeemPoints bool
	Origin       string
}

type BookingService struct {
	db      *gorm.DB
	log     *zap.Logger
	loc     *time.Location
	loyalty LoyaltyPolicy
}

func NewBookingService(db *gorm.DB, log *zap.Logger, loc *time.Location, loyalty LoyaltyPolicy) *BookingService {
	return &BookingService{db: db, log: log, loc: loc, loyalty: loyalty}
}

// CreateBooking runs the whole booking as one transaction: service lookup,
// client resolution by phone, cabin assignment, overlap re-validation for
// both staff and cabin, product stock decrements, optional loyalty
// redemption and the appointment insert. Either everything is applied or
// nothing is.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*models.Appointment, error) {
	if !utils.ValidatePhone(in.ClientPhone) {
		return nil, ErrInvalidPhone
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, s.loc)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	var appointment *models.Appointment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, "id = ?", in.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		duration := svc.DurationMin
		if duration <= 0 {
			s.log.Warn("service has no duration, using fallback",
				zap.String("service_id", svc.ID.String()),
				zap.Int("fallback_min", FallbackDurationMin))
			duration = FallbackDurationMin
		}
		end := start.Add(time.Duration(duration) * time.Minute)

		var staff models.StaffMember
		if err := tx.First(&staff, "id = ?", in.StaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStaffNotFound
			}
			return err
		}

		client, err := s.resolveClient(tx, in)
		if err != nil {
			return err
		}

		var cabin models.Cabin
		if err := tx.Order("created_at ASC").First(&cabin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCabinNotFound
			}
			return err
		}

		// Re-validate inside the transaction; the availability read the
		// caller saw may be stale by now.
		if err := s.checkOverlap(tx, "staff_id", staff.ID, start, end); err != nil {
			return err
		}
		if err := s.checkOverlap(tx, "cabin_id", cabin.ID, start, end); err != nil {
			return err
		}

		total := svc.Price
		var lines []models.AppointmentProduct
		for _, line := range in.Products {
			if line.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			product, err := s.decrementStock(tx, line)
			if err != nil {
				return err
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			lines = append(lines, models.AppointmentProduct{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		if in.RedeemPoints {
			discount, spent := s.loyalty.Redeem(client)
			if discount.IsPositive() && spent > 0 {
				// Guarded like the stock decrement: a concurrent redemption
				// that already spent the points leaves zero rows affected,
				// and then no discount applies.
				res := tx.Model(&models.Client{}).
					Where("id = ? AND loyalty_points >= ?", client.ID, spent).
					UpdateColumn("loyalty_points", gorm.Expr("loyalty_points - ?", spent))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected > 0 {
					total = total.Sub(discount)
					if total.IsNegative() {
						total = decimal.Zero
					}
				}
			}
		}

		notes := in.Notes
		if in.Origin == OriginOnline {
			notes = strings.TrimSpace("[online] " + notes)
		}

		appointment = &models.Appointment{
			ServiceID:  svc.ID,
			StaffID:    staff.ID,
			ClientID:   client.ID,
			CabinID:    cabin.ID,
			StartTime:  start,
			EndTime:    end,
			Status:     models.StatusPending,
			Notes:      notes,
			TotalPrice: total,
		}
		if err := tx.Create(appointment).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].AppointmentID = appointment.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		appointment.Products = lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("appointment_id", appointment.ID.String()),
		zap.Time("start", appointment.StartTime),
		zap.String("origin", in.Origin))
	return appointment, nil
}

// resolveClient looks a client up by exact phone and creates one on a miss.
// The unique index on phone closes the lookup-then-insert race: a concurrent
// insert makes ours fail, and we re-read the winner's row.
func (s *BookingService) resolveClient(tx *gorm.DB, in BookingInput) (*models.Client, error) {
	var client models.Client
	err := tx.Where("phone = ?", in.ClientPhone).First(&client).Error
	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		Name:  in.ClientName,
		Phone: in.ClientPhone,
		Email: in.ClientEmail,
	}
	if err := tx.Create(&client).Error; err != nil {
		var existing models.Client
		if lookupErr := tx.Where("phone = ?", in.ClientPhone).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &client, nil
}

func (s *BookingService) checkOverlap(tx *gorm.DB, column string, id uuid.UUID, start, end time.Time) error {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where(column+" = ? AND status <> ? AND start_time < ? AND end_time > ?",
			id, models.StatusCancelled, end, start).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlotTaken
	}
	return nil
}

// decrementStock applies `stock = stock - n` guarded by `stock >= n`, so two
// concurrent bookings can never oversell; zero rows affected means there was
// not enough stock left.
func (s *BookingService) decrementStock(tx *gorm.DB, line ProductLineInput) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity}
		}
		return nil, err
	}

	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &InsufficientStockError{
			ProductID: line.ProductID,
			Requested: line.Quantity,
			Available: product.Stock,
		}
	}
	return &product, nil
}
