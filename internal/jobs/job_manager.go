package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	taskDispatchJob *TaskDispatchJob
	expirySweepJob  *ExpirySweepJob
}

// NewJobManager creates a job manager for the dispatcher and the expiry sweep.
// The sweep is optional and may be nil.
func NewJobManager(taskDispatchJob *TaskDispatchJob, expirySweepJob *ExpirySweepJob) *JobManager {
	return &JobManager{
		taskDispatchJob: taskDispatchJob,
		expirySweepJob:  expirySweepJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.taskDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start task dispatch job: %w", err)
	}

	if jm.expirySweepJob == nil {
		return nil
	}
	if err := jm.expirySweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.taskDispatchJob.Stop()
		return fmt.Errorf("failed to start expiry sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	if jm.expirySweepJob != nil {
		jm.expirySweepJob.Stop()
	}
	jm.taskDispatchJob.Stop()
}
