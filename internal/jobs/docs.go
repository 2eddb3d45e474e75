// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(reviewQueueHandler, "*/10 * * * *", time.Hour, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// One job is currently registered: ReviewReminderJob scans the under-review
// queue on its schedule and logs a warning for every order waiting longer
// than the configured age, so stalled reviews show up in the log stream.
package jobs
