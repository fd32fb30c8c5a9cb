package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cabin is a physical room. Bookings default to the oldest registered cabin
// and the booking transaction checks cabin overlap the same way it checks
// staff overlap.
type Cabin struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"not null" json:"name"`

	gorm.Model `json:"-"`
}

func (c *Cabin) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
