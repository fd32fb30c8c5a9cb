package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusPaid      AppointmentStatus = "paid"
)

// CanTransitionTo enforces the monotonic status lifecycle:
// pending -> confirmed -> paid, with cancellation allowed from pending or
// confirmed. cancelled and paid are terminal.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled || target == StatusPaid
	case StatusConfirmed:
		return target == StatusPaid || target == StatusCancelled
	default:
		return false
	}
}

func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusPaid
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	StaffID   uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	CabinID   uuid.UUID `gorm:"type:uuid;index;not null" json:"cabinId"`

	StartTime time.Time         `gorm:"index;not null" json:"startTime"`
	EndTime   time.Time         `gorm:"not null" json:"endTime"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes     string            `json:"notes"`

	// Service price plus product lines minus any loyalty discount, frozen at
	// booking time.
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalPrice"`

	// Write-once; set via a conditional UPDATE so concurrent scans cannot
	// double-send.
	ReminderSentAt *time.Time `json:"reminderSentAt"`

	Service Service     `gorm:"foreignKey:ServiceID" json:"-"`
	Staff   StaffMember `gorm:"foreignKey:StaffID" json:"-"`
	Client  Client      `gorm:"foreignKey:ClientID" json:"-"`
	Cabin   Cabin       `gorm:"foreignKey:CabinID" json:"-"`

	Products []AppointmentProduct `gorm:"foreignKey:AppointmentID" json:"products,omitempty"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
