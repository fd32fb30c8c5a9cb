package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID    uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name  string          `gorm:"not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock int             `gorm:"default:0" json:"stock"`

	gorm.Model `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// AppointmentProduct is a retail line item sold together with a booking.
// UnitPrice is frozen at booking time.
type AppointmentProduct struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;index;not null" json:"appointmentId"`
	ProductID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"productId"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}

func (p *AppointmentProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
