package jobs

import (
	"context"
	"log/slog"

	"sales/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpiredSalesCleanupJob manages the scheduled deletion of expired pending
// sales. Runs every minute so abandoned reservations free their stock holds
// shortly after the pending window closes.
type ExpiredSalesCleanupJob struct {
	handler commands.CleanupExpiredSalesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpiredSalesCleanupJob creates a new job for sweeping expired sales.
// Uses CleanupExpiredSalesCommandHandler to delete expired pending sales
// every minute.
func NewExpiredSalesCleanupJob(handler commands.CleanupExpiredSalesCommandHandler, logger *slog.Logger) *ExpiredSalesCleanupJob {
	return &ExpiredSalesCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "expired_sales_cleanup_job"),
	}
}

// Start begins the cleanup job to run every minute.
func (j *ExpiredSalesCleanupJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCleanupExpiredSalesCommand()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expired sales cleanup job failed", "error", err)
			return
		}

		if result.Count > 0 {
			j.logger.InfoContext(ctx, "Cleaned up expired sales", "count", result.Count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expired sales cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *ExpiredSalesCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expired sales cleanup job stopped")
}
