package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Reminder pipeline metrics
	RemindersProcessed *prometheus.CounterVec
	RemindersFailed    *prometheus.CounterVec
	RemindersSkipped   prometheus.Counter
	EscalationsSent    prometheus.Counter
	ConfirmationsTotal prometheus.Counter
	TickDuration       prometheus.Histogram
	TicksSkipped       prometheus.Counter

	// Collaborator metrics
	RenderDuration   prometheus.Histogram
	DeliveryDuration prometheus.Histogram

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		RemindersProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_processed_total",
			Help:      "Total number of reminder notifications sent, by event type and timing",
		}, []string{"event_type", "timing"}),
		RemindersFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder notifications that failed, by event type and timing",
		}, []string{"event_type", "timing"}),
		RemindersSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_skipped_total",
			Help:      "Reminders suppressed because a ledger row already existed",
		}),
		EscalationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "medication_escalations_total",
			Help:      "Post-due escalation reminders sent for unconfirmed medications",
		}),
		ConfirmationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "medication_confirmations_total",
			Help:      "Medication intake confirmations received",
		}),
		TickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scheduler_tick_duration_seconds",
			Help:      "Time spent in one scheduler pass",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		TicksSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_ticks_skipped_total",
			Help:      "Timer firings dropped because the previous pass was still running",
		}),
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "narration_render_duration_seconds",
			Help:      "Speech synthesis latency",
			Buckets:   prometheus.DefBuckets,
		}),
		DeliveryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "IoT delivery latency",
			Buckets:   prometheus.DefBuckets,
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Database operations by name and result",
		}, []string{"operation", "result"}),
	}
}
