package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StaleAcceptExpirer rolls back accepted orders whose confirmation never
// arrived.
type StaleAcceptExpirer interface {
	ExpireStaleAccepts(ctx context.Context)
}

// StaleAcceptJob sweeps unconfirmed accepts every second so a dead
// confirmation never pins the worker on a phantom order.
type StaleAcceptJob struct {
	expirer StaleAcceptExpirer
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleAcceptJob creates a job that expires stale accepts every second.
func NewStaleAcceptJob(expirer StaleAcceptExpirer, logger *slog.Logger) *StaleAcceptJob {
	return &StaleAcceptJob{
		expirer: expirer,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_accept_job"),
	}
}

// Start begins the stale accept sweep to run every second.
func (j *StaleAcceptJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.expirer.ExpireStaleAccepts(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale accept job started (running every second)")
	return nil
}

// Stop stops the stale accept job.
func (j *StaleAcceptJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale accept job stopped")
}
