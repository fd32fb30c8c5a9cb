package controllers

import (
	"time"

	"salon-agenda-backend/config"
	"salon-agenda-backend/services"
)

// Wired once at startup; handlers are package-level functions over this
// shared state.
var (
	settings *config.Settings
	location *time.Location

	bookingSvc      *services.BookingService
	reminderSvc     *services.ReminderService
	confirmationSvc *services.ConfirmationService
	slotGrid        services.SlotGrid
)

func Setup(
	s *config.Settings,
	loc *time.Location,
	booking *services.BookingService,
	reminder *services.ReminderService,
	confirmation *services.ConfirmationService,
) {
	settings = s
	location = loc
	bookingSvc = booking
	reminderSvc = reminder
	confirmationSvc = confirmation
	slotGrid = services.SlotGrid{
		OpenMin:   s.BusinessStartMin,
		CloseMin:  s.BusinessEndMin,
		StepMin:   s.SlotStepMin,
		BufferMin: s.BookingBufferMin,
	}
}
