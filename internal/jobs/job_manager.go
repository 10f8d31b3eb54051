// Package jobs provides scheduled background tasks for the status engine,
// built on github.com/robfig/cron/v3. Jobs are managed through JobManager,
// which starts and stops them as a group.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleOrderJob *StaleOrderJob
}

// NewJobManager creates a job manager wired to the application's query handlers.
func NewJobManager(
	getStaleOrdersHandler queries.GetStaleOrdersQueryHandler,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderJob: NewStaleOrderJob(getStaleOrdersHandler, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order watchdog: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderJob.Stop()
}
