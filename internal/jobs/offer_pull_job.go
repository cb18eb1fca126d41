package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// OfferPuller re-fetches the offered orders listing from the backend.
type OfferPuller interface {
	Pull(ctx context.Context) error
}

// OfferPullJob periodically refreshes the offered orders view while the
// worker is online. Transient backend failures are absorbed inside the
// pull itself, so any error surfacing here is worth logging.
type OfferPullJob struct {
	puller   OfferPuller
	cron     *cron.Cron
	logger   *slog.Logger
	interval time.Duration
}

// NewOfferPullJob creates a job that pulls offers at the given interval.
func NewOfferPullJob(puller OfferPuller, interval time.Duration, logger *slog.Logger) *OfferPullJob {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &OfferPullJob{
		puller:   puller,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "offer_pull_job"),
		interval: interval,
	}
}

// Start begins the periodic offer pull.
func (j *OfferPullJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()
		if err := j.puller.Pull(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Offer pull job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer pull job started", "interval", j.interval.String())
	return nil
}

// Stop stops the offer pull job.
func (j *OfferPullJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer pull job stopped")
}
