package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Phone string    `gorm:"uniqueIndex;not null" json:"phone"`
	Email string    `json:"email"`

	BirthDate     *time.Time `json:"birthDate"`
	LoyaltyPoints int        `gorm:"default:0" json:"loyaltyPoints"`
	Conflictive   bool       `gorm:"default:false" json:"conflictive"`
	Notes         string     `json:"notes"`

	// Year of the last birthday greeting; the birthday scan only greets a
	// client whose marker differs from the current year.
	GreetedYear int `gorm:"default:0" json:"-"`

	Appointments []Appointment `gorm:"foreignKey:ClientID" json:"-"`

	gorm.Model `json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
