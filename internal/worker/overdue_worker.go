package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/service"
)

// OverdueScanTimeout bounds a single scheduled scan.
const OverdueScanTimeout = 2 * time.Minute

// OverdueRefresher recomputes and stores the overdue-session snapshot.
type OverdueRefresher interface {
	RefreshOverdueSnapshot(ctx context.Context) *service.OverdueReport
}

// OverdueWorker recomputes the overdue-session report on a cron schedule so the
// dashboard banner reads a precomputed snapshot.
type OverdueWorker struct {
	reports  OverdueRefresher
	schedule string
	loc      *time.Location
	log      zerolog.Logger
}

func NewOverdueWorker(reports OverdueRefresher, schedule string, loc *time.Location, log zerolog.Logger) *OverdueWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &OverdueWorker{
		reports:  reports,
		schedule: schedule,
		loc:      loc,
		log:      log.With().Str("component", "overdue_worker").Logger(),
	}
}

// Start runs one scan immediately, then follows the schedule until ctx is cancelled.
// It returns an error only when the schedule cannot be parsed.
func (w *OverdueWorker) Start(ctx context.Context) error {
	logger := cronLogger{log: w.log}
	c := cron.New(
		cron.WithLocation(w.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(w.schedule, func() { w.scan(ctx) }); err != nil {
		w.log.Error().Err(err).Str("schedule", w.schedule).Msg("Invalid overdue scan schedule")
		return err
	}

	w.log.Info().Str("schedule", w.schedule).Msg("OverdueWorker started")
	w.scan(ctx)
	c.Start()

	<-ctx.Done()
	w.log.Info().Msg("Shutdown requested. Waiting for running scan...")
	<-c.Stop().Done()
	return nil
}

func (w *OverdueWorker) scan(parent context.Context) {
	if parent.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, OverdueScanTimeout)
	defer cancel()

	start := time.Now()
	rep := w.reports.RefreshOverdueSnapshot(ctx)
	w.log.Info().
		Int("overdue", len(rep.Students)).
		Dur("took", time.Since(start)).
		Msg("Overdue snapshot refreshed")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
