package scheduler

import (
	"context"
	"time"

	"birthday_reminder_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// checkTimeout bounds one pipeline invocation so a wedged transport call
// cannot leak a job goroutine forever.
const checkTimeout = 5 * time.Minute

// ReminderScheduler drives the two periodic birthday check pipelines. The
// personal and group jobs run on independent cron entries; a failure inside
// one never affects the other's schedule, and neither job persists a
// last-run timestamp, so a restart simply resumes on the new wall clock.
type ReminderScheduler struct {
	cronEngine            *cron.Cron
	reminders             *app.ReminderService
	logger                *logrus.Entry
	cronSpecPersonalCheck string
	cronSpecGroupCheck    string
}

func NewReminderScheduler(
	reminders *app.ReminderService,
	logger *logrus.Entry,
	cronSpecPersonalCheck string, // e.g., "0 0 * * *" (midnight daily)
	cronSpecGroupCheck string,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:            cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminders:             reminders,
		logger:                logger,
		cronSpecPersonalCheck: cronSpecPersonalCheck,
		cronSpecGroupCheck:    cronSpecGroupCheck,
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecPersonalCheck, func() {
		s.logger.Info("Cron job triggered for personal birthday check")
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		result := s.reminders.RunPersonalCheck(ctx)
		s.logger.WithFields(logrus.Fields{
			"matched": result.Matched,
			"sent":    result.Sent,
			"failed":  result.Failed,
		}).Info("Personal birthday check finished")
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add personal check cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecGroupCheck, func() {
		s.logger.Info("Cron job triggered for group birthday check")
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		result := s.reminders.RunGroupCheck(ctx)
		s.logger.WithFields(logrus.Fields{
			"matched": result.Matched,
			"sent":    result.Sent,
			"failed":  result.Failed,
		}).Info("Group birthday check finished")
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add group check cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Reminder scheduler started with jobs")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops scheduling new runs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped")
}
