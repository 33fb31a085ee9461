// Package jobs provides scheduled background tasks for the matching coordinator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TaskDispatchJob - Runs every second, leases due delayed tasks from the task
// backend (redis or postgres) and runs them on a bounded worker pool
// 2. ExpirySweepJob - Runs every minute and expires PENDING jobs past their claim
// deadline whose delayed task never ran
//
// # Usage
//
//	dispatch := jobs.NewTaskDispatchJob(queue, expireUnclaimed, expireOffer, cfg, time.Now, logger)
//	sweep := jobs.NewExpirySweepJob(jobRepo, expireUnclaimed, 100, time.Now, logger)
//	jobManager := jobs.NewJobManager(dispatch, sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Delivery
//
// Tasks are delivered at least once. The expiry handlers re-check the job's current
// status through a conditional write, so a repeated or late task changes nothing.
//
// # Error Handling
//
// - A failing task is retried with exponential backoff
// - After DispatchConfig.MaxAttempts failures the task is dead-lettered and logged
// - Tasks of an unknown kind are dead-lettered immediately
// - Failed job starts will stop any already running jobs
package jobs
