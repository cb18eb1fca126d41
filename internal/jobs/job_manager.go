package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// SessionJobs is the part of the application session the background jobs
// drive.
type SessionJobs interface {
	OfferPuller
	StaleAcceptExpirer
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	offerPullJob   *OfferPullJob
	staleAcceptJob *StaleAcceptJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(session SessionJobs, pullInterval time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		offerPullJob:   NewOfferPullJob(session, pullInterval, logger),
		staleAcceptJob: NewStaleAcceptJob(session, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.offerPullJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer pull job: %w", err)
	}

	if err := jm.staleAcceptJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.offerPullJob.Stop()
		return fmt.Errorf("failed to start stale accept job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleAcceptJob.Stop()
	jm.offerPullJob.Stop()
}
