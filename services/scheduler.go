package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the internal timers: the reminder scan every five minutes
// and the birthday pass each morning. Both actions are idempotent, so running
// them here and from the /tasks endpoints at the same time is safe.
type Scheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
	log       *zap.Logger
	loc       *time.Location
}

func NewScheduler(reminders *ReminderService, log *zap.Logger, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		reminders: reminders,
		log:       log,
		loc:       loc,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", func() {
		s.reminders.ScanAndDispatch(time.Now().In(s.loc))
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 9 * * *", func() {
		s.reminders.SendBirthdayGreetings(time.Now().In(s.loc))
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
