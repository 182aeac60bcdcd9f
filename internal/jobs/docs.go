// Package jobs provides scheduled background tasks for the sales system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the sales service.
//
// # Available Jobs
//
// 1. ExpiredSalesCleanupJob - Runs every minute to delete pending sales whose
// fifteen-minute reservation window has passed, cascading to their line items
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cleanupExpiredSalesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The cleanup job uses the cron expression "* * * * *" which means it runs
// every minute. The sweep is idempotent, so overlapping or missed runs are
// harmless.
//
// # Error Handling
//
// Cleanup failures are logged and retried on the next tick; a failed sweep
// never affects request handling.
package jobs
