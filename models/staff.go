package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salon-agenda-backend/utils"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type StaffMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Color    string    `gorm:"type:varchar(16);default:'#6c5ce7'" json:"color"`
	Role     string    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin"`

	Appointments []Appointment `gorm:"foreignKey:StaffID" json:"-"`

	gorm.Model `json:"-"`
}

// Hash the password before the row is created.
func (m *StaffMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(m.Password)
	if err != nil {
		return err
	}
	m.Password = hashed
	return
}
