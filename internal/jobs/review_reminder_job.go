package jobs

import (
	"context"
	"log/slog"
	"time"

	"bookstore/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ReviewReminderJob periodically surfaces orders stuck in under-review so
// managers act on them. It logs each waiter with its queue age; alerting
// picks the entries up from the log stream.
type ReviewReminderJob struct {
	handler  queries.GetReviewQueueQueryHandler
	cron     *cron.Cron
	logger   *slog.Logger
	schedule string
	maxAge   time.Duration
}

// NewReviewReminderJob creates a job that checks the review queue on the
// given cron schedule and reports orders waiting longer than maxAge.
func NewReviewReminderJob(
	handler queries.GetReviewQueueQueryHandler,
	schedule string,
	maxAge time.Duration,
	logger *slog.Logger,
) *ReviewReminderJob {
	return &ReviewReminderJob{
		handler:  handler,
		cron:     cron.New(),
		logger:   logger.With("component", "review_reminder_job"),
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start begins the review reminder job on its schedule.
func (j *ReviewReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Review reminder job started", "schedule", j.schedule)
	return nil
}

// Stop stops the review reminder job.
func (j *ReviewReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Review reminder job stopped")
}

func (j *ReviewReminderJob) run() {
	ctx := context.Background()

	queue, err := j.handler.Handle(ctx, queries.NewGetReviewQueueQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Review reminder job failed", "error", err)
		return
	}

	now := time.Now()
	overdue := 0
	for _, waiter := range queue {
		age := now.Sub(waiter.UpdatedAt)
		if age < j.maxAge {
			continue
		}
		overdue++
		j.logger.WarnContext(ctx, "Order awaiting review",
			"order_id", waiter.ID.String(),
			"customer_id", waiter.CustomerID.String(),
			"waiting", age.Round(time.Second).String(),
		)
	}

	if overdue > 0 {
		j.logger.InfoContext(ctx, "Review queue checked", "total", len(queue), "overdue", overdue)
	}
}
