package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PackingTimeoutJob runs the stale packing session sweep on a fixed interval.
// Each run reverts abandoned packing orders back to Confirmed so their items
// become packable again.
type PackingTimeoutJob struct {
	handler  *commands.SweepPackingSessionsCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPackingTimeoutJob creates a new job for sweeping stale packing sessions.
// Uses SweepPackingSessionsCommandHandler to revert abandoned sessions.
func NewPackingTimeoutJob(
	handler *commands.SweepPackingSessionsCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *PackingTimeoutJob {
	return &PackingTimeoutJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "packing_timeout_job"),
	}
}

// Start begins the packing timeout job on its configured interval.
func (j *PackingTimeoutJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()
		cmd := commands.NewSweepPackingSessionsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Packing timeout sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Packing timeout job started", "interval", j.interval.String())
	return nil
}

// Stop stops the packing timeout job.
func (j *PackingTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Packing timeout job stopped")
}
