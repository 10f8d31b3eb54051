package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob periodically reports orders stuck in a non-terminal status
// longer than the configured threshold. The job is read-only: it raises
// visibility for operators but never transitions anything itself.
type StaleOrderJob struct {
	handler   queries.GetStaleOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderJob creates the watchdog with the given staleness threshold.
func NewStaleOrderJob(
	handler queries.GetStaleOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_order_job"),
	}
}

// Start begins the watchdog, running once a minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order watchdog started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the watchdog.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order watchdog stopped")
}

func (j *StaleOrderJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStaleOrdersQuery(j.threshold)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order watchdog misconfigured", "error", err)
		return
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order watchdog failed", "error", err)
		return
	}

	for _, o := range stale {
		j.logger.WarnContext(ctx, "Order has not moved past threshold",
			"order_id", o.ID,
			"order_number", o.OrderNumber,
			"status", o.Status.String(),
			"stuck_since", o.UpdatedAt.Format(time.RFC3339),
		)
	}
}
