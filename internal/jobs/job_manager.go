package jobs

import (
	"fmt"
	"log/slog"

	"sales/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expiredSalesCleanupJob *ExpiredSalesCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	cleanupExpiredSalesHandler commands.CleanupExpiredSalesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expiredSalesCleanupJob: NewExpiredSalesCleanupJob(cleanupExpiredSalesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expiredSalesCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start expired sales cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiredSalesCleanupJob.Stop()
}
