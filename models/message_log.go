package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageKindReminder = "reminder"
	MessageKindBirthday = "birthday"
	MessageKindReply    = "reply"
)

// MessageLog records every outbound message attempt.
type MessageLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind     string    `gorm:"type:varchar(20);not null"`
	Channel  string    `gorm:"type:varchar(20)"` // whatsapp, sms
	Body     string    `gorm:"type:text"`
	Status   string    `gorm:"type:varchar(20)"` // sent, failed
	Error    string    `gorm:"type:text"`
	SentAt   time.Time

	gorm.Model
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
