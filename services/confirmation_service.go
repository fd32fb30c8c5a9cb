package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
	"salon-agenda-backend/utils"
)

// Fixed, user-facing replies. The channel always gets one of these back.
const (
	ReplyConfirmed      = "¡Gracias! Tu cita ha quedado confirmada. Te esperamos."
	ReplyCancelled      = "Tu cita ha sido cancelada. Escríbenos cuando quieras reservar de nuevo."
	ReplyNothingPending = "No encontramos ninguna cita pendiente a tu nombre."
	ReplyNotUnderstood  = "No hemos entendido tu mensaje. Responde SI para confirmar o NO para cancelar tu cita."
)

// Confirmation keywords are checked before cancellation keywords; a message
// containing both sets classifies as a confirmation. House policy, do not
// reorder.
var (
	confirmKeywords = []string{"si", "sí", "confirmar", "confirmo", "ok", "vale"}
	cancelKeywords  = []string{"no", "cancelar", "anular"}
)

type ConfirmationService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConfirmationService(db *gorm.DB, log *zap.Logger) *ConfirmationService {
	return &ConfirmationService{db: db, log: log}
}

// HandleInboundMessage maps a client reply onto a status transition for their
// earliest upcoming appointment and returns the reply to send back. It never
// returns an error: the webhook must look successful to the channel even when
// there is nothing to do, or the channel retries.
func (s *ConfirmationService) HandleInboundMessage(senderAddress, bodyText string) string {
	phone := utils.NormalizePhone(senderAddress)

	var client models.Client
	if err := s.db.Where("phone = ?", phone).First(&client).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("inbound client lookup failed", zap.Error(err))
		}
		return ReplyNotUnderstood
	}

	reply := s.transition(client, bodyText)
	s.logReply(client, reply)
	return reply
}

// transition resolves the client's earliest upcoming appointment and applies
// the classified status change, if any.
func (s *ConfirmationService) transition(client models.Client, bodyText string) string {
	var appt models.Appointment
	err := s.db.
		Where("client_id = ? AND start_time > ?", client.ID, time.Now()).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("start_time ASC").
		First(&appt).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("inbound appointment lookup failed", zap.Error(err))
		}
		return ReplyNothingPending
	}

	target, ok := classify(bodyText)
	if !ok {
		return ReplyNotUnderstood
	}
	if target == appt.Status || !appt.Status.CanTransitionTo(target) {
		// Classified but a no-op (e.g. "si" on an already confirmed
		// appointment); clarify instead of mutating.
		return ReplyNotUnderstood
	}

	// Conditional on the status we read, so a concurrent webhook for the
	// same appointment cannot apply a conflicting transition.
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appt.ID, appt.Status).
		Update("status", target)
	if res.Error != nil {
		s.log.Error("status transition failed", zap.Error(res.Error))
		return ReplyNotUnderstood
	}
	if res.RowsAffected == 0 {
		return ReplyNotUnderstood
	}

	s.log.Info("appointment status updated by inbound message",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(target)))

	if target == models.StatusCancelled {
		return ReplyCancelled
	}
	return ReplyConfirmed
}

func (s *ConfirmationService) logReply(client models.Client, reply string) {
	channel, _ := ChannelFor(client.Phone)
	entry := models.MessageLog{
		ClientID: client.ID,
		Kind:     models.MessageKindReply,
		Channel:  channel,
		Body:     reply,
		Status:   "sent",
		SentAt:   time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn("failed to write message log", zap.Error(err))
	}
}

func classify(body string) (models.AppointmentStatus, bool) {
	text := strings.ToLower(body)
	for _, kw := range confirmKeywords {
		if strings.Contains(text, kw) {
			return models.StatusConfirmed, true
		}
	}
	for _, kw := range cancelKeywords {
		if strings.Contains(text, kw) {
			return models.StatusCancelled, true
		}
	}
	return "", false
}
