package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/metrics"
)

var testMetrics = metrics.New("workertest")

type countingChecker struct {
	runs  atomic.Int64
	panic bool
}

func (c *countingChecker) RunCheck(ctx context.Context) {
	c.runs.Add(1)
	if c.panic {
		panic("tick blew up")
	}
}

func TestWorkerRunsOnSchedule(t *testing.T) {
	checker := &countingChecker{}
	w := NewReminderWorker(checker, 20*time.Millisecond, testMetrics,
		logger.NewLogger(&logger.Config{Level: logger.ErrorLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(110 * time.Millisecond)
	cancel()
	<-done

	// One immediate pass plus several scheduled ones.
	assert.GreaterOrEqual(t, checker.runs.Load(), int64(3))
}

func TestWorkerSurvivesPanickingTick(t *testing.T) {
	checker := &countingChecker{panic: true}
	w := NewReminderWorker(checker, 20*time.Millisecond, testMetrics,
		logger.NewLogger(&logger.Config{Level: logger.ErrorLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(90 * time.Millisecond)
	cancel()
	<-done

	// Every tick panicked and the loop kept going regardless.
	assert.GreaterOrEqual(t, checker.runs.Load(), int64(2))
}
