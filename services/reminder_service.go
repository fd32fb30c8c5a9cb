// services/reminder_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
)

// Reminders go out for appointments starting roughly two hours from the scan,
// with a margin matching the scan cadence.
const (
	reminderWindowStart = 105 * time.Minute
	reminderWindowEnd   = 135 * time.Minute
)

type ReminderOutcome struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"` // sent, failed, skipped
	Error         string    `json:"error,omitempty"`
}

type BirthdayOutcome struct {
	ClientID uuid.UUID `json:"clientId"`
	Name     string    `json:"name"`
	Status   string    `json:"status"` // sent, failed, skipped
	Error    string    `json:"error,omitempty"`
}

type ReminderService struct {
	db        *gorm.DB
	messenger Messenger
	log       *zap.Logger
}

func NewReminderService(db *gorm.DB, messenger Messenger, log *zap.Logger) *ReminderService {
	return &ReminderService{db: db, messenger: messenger, log: log}
}

// ScanAndDispatch sends a reminder for every appointment starting inside the
// trigger window that has not been reminded yet, then marks it with a
// conditional write. The mark is the idempotency guard: it only lands while
// reminder_sent_at is still null, so concurrent scans (the internal timer and
// the /tasks endpoint) cannot double-send. Safe to call redundantly.
func (s *ReminderService) ScanAndDispatch(now time.Time) []ReminderOutcome {
	windowStart := now.Add(reminderWindowStart)
	windowEnd := now.Add(reminderWindowEnd)

	var due []models.Appointment
	err := s.db.Preload("Client").Preload("Service").
		Where("start_time >= ? AND start_time <= ?", windowStart, windowEnd).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Where("reminder_sent_at IS NULL").
		Find(&due).Error
	if err != nil {
		s.log.Error("reminder scan query failed", zap.Error(err))
		return nil
	}

	outcomes := make([]ReminderOutcome, 0, len(due))
	for _, appt := range due {
		outcomes = append(outcomes, s.dispatchOne(appt, now))
	}

	s.log.Info("reminder scan finished",
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Int("due", len(due)))
	return outcomes
}

func (s *ReminderService) dispatchOne(appt models.Appointment, now time.Time) ReminderOutcome {
	outcome := ReminderOutcome{AppointmentID: appt.ID, Phone: appt.Client.Phone}

	body := fmt.Sprintf(
		"Hola %s, te recordamos tu cita de %s a las %s. Responde SI para confirmar o NO para cancelar.",
		appt.Client.Name, appt.Service.Name, appt.StartTime.Format("15:04"))
	channel, to := ChannelFor(appt.Client.Phone)

	sendErr := s.messenger.Send(channel, to, body)
	s.logMessage(appt.ClientID, models.MessageKindReminder, channel, body, sendErr, now)

	if sendErr != nil {
		// Left unmarked on purpose: a later scan retries while the
		// appointment is still inside the window.
		s.log.Warn("reminder send failed",
			zap.String("appointment_id", appt.ID.String()), zap.Error(sendErr))
		outcome.Status = "failed"
		outcome.Error = sendErr.Error()
		return outcome
	}

	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent_at IS NULL", appt.ID).
		Update("reminder_sent_at", now)
	if res.Error != nil {
		outcome.Status = "failed"
		outcome.Error = res.Error.Error()
		return outcome
	}
	if res.RowsAffected == 0 {
		// A concurrent scan marked it between our select and this write.
		outcome.Status = "skipped"
		return outcome
	}

	outcome.Status = "sent"
	return outcome
}

// SendBirthdayGreetings greets every client born on today's month/day who has
// not been greeted this calendar year. The per-year marker on the client row
// is written conditionally, making the pass idempotent per year.
func (s *ReminderService) SendBirthdayGreetings(today time.Time) []BirthdayOutcome {
	year := today.Year()

	var candidates []models.Client
	err := s.db.
		Where("birth_date IS NOT NULL AND greeted_year <> ?", year).
		Find(&candidates).Error
	if err != nil {
		s.log.Error("birthday scan query failed", zap.Error(err))
		return nil
	}

	var outcomes []BirthdayOutcome
	for _, client := range candidates {
		if client.BirthDate.Month() != today.Month() || client.BirthDate.Day() != today.Day() {
			continue
		}
		outcomes = append(outcomes, s.greetOne(client, year, today))
	}

	s.log.Info("birthday scan finished", zap.Int("greeted", len(outcomes)))
	return outcomes
}

func (s *ReminderService) greetOne(client models.Client, year int, now time.Time) BirthdayOutcome {
	outcome := BirthdayOutcome{ClientID: client.ID, Name: client.Name}

	body := fmt.Sprintf("¡Feliz cumpleaños, %s! Todo el equipo del salón te desea un gran día.", client.Name)
	channel, to := ChannelFor(client.Phone)

	sendErr := s.messenger.Send(channel, to, body)
	s.logMessage(client.ID, models.MessageKindBirthday, channel, body, sendErr, now)

	if sendErr != nil {
		outcome.Status = "failed"
		outcome.Error = sendErr.Error()
		return outcome
	}

	res := s.db.Model(&models.Client{}).
		Where("id = ? AND greeted_year <> ?", client.ID, year).
		Update("greeted_year", year)
	if res.Error != nil {
		outcome.Status = "failed"
		outcome.Error = res.Error.Error()
		return outcome
	}
	if res.RowsAffected == 0 {
		outcome.Status = "skipped"
		return outcome
	}

	outcome.Status = "sent"
	return outcome
}

func (s *ReminderService) logMessage(clientID uuid.UUID, kind, channel, body string, sendErr error, now time.Time) {
	entry := models.MessageLog{
		ClientID: clientID,
		Kind:     kind,
		Channel:  channel,
		Body:     body,
		Status:   "sent",
		SentAt:   now,
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.Error = sendErr.Error()
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn("failed to write message log", zap.Error(err))
	}
}
