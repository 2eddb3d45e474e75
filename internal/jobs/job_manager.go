package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"bookstore/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reviewReminderJob *ReviewReminderJob
}

// NewJobManager creates a job manager with all required jobs wired up.
func NewJobManager(
	reviewQueueHandler queries.GetReviewQueueQueryHandler,
	reminderSchedule string,
	reviewMaxAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reviewReminderJob: NewReviewReminderJob(reviewQueueHandler, reminderSchedule, reviewMaxAge, logger),
	}
}

// StartAll starts all scheduled jobs. Returns an error if any job fails to
// start.
func (jm *JobManager) StartAll() error {
	if err := jm.reviewReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start review reminder job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reviewReminderJob.Stop()
}
