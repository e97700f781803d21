package worker

import (
	"context"
	"time"

	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/metrics"
)

// Checker is one reminder pass.
type Checker interface {
	RunCheck(ctx context.Context)
}

// ReminderWorker fires the reminder check on a fixed interval. Ticks run
// synchronously, so a pass that overruns the interval simply delays the
// next one; firings that pile up while a pass runs are coalesced, never
// queued.
type ReminderWorker struct {
	svc      Checker
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewReminderWorker(svc Checker, interval time.Duration, m *metrics.Metrics, logger *logger.Logger) *ReminderWorker {
	return &ReminderWorker{
		svc:      svc,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled. An in-flight tick is allowed to
// finish before Start returns.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.logger.Info("reminder worker started", "interval", w.interval.String())

	// First pass immediately so a restart doesn't leave a full interval
	// of silence.
	w.runTick()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.runTick()
			w.drainPending(ticker)
		}
	}
}

func (w *ReminderWorker) runTick() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(nil, "reminder tick panicked", "panic", r)
		}
	}()

	start := time.Now()
	// The tick context is independent of the run loop's so that shutdown
	// lets the in-flight pass complete instead of aborting it mid item.
	ctx, cancel := context.WithTimeout(context.Background(), 5*w.interval)
	defer cancel()

	w.svc.RunCheck(ctx)
	w.metrics.TickDuration.Observe(time.Since(start).Seconds())
}

// drainPending discards ticker firings that accumulated while the last
// pass was running.
func (w *ReminderWorker) drainPending(ticker *time.Ticker) {
	for {
		select {
		case <-ticker.C:
			w.metrics.TicksSkipped.Inc()
		default:
			return
		}
	}
}
