package reminder

import (
	"context"
	"time"

	"github.com/vicevalds/carelink/internal/config"
	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/metrics"
)

// Matcher selects the events due for notification in one lead-time
// window. Matching is a pure function of the clock, the normalized
// events and the ledger; the ledger write afterwards is what prevents
// repeated delivery.
type Matcher struct {
	ledger  repository.ReminderRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewMatcher(ledger repository.ReminderRepository, m *metrics.Metrics, logger *logger.Logger) *Matcher {
	return &Matcher{ledger: ledger, metrics: m, logger: logger}
}

// Match returns the events whose due instant lies within the tolerance
// band around now+lead and that have no ledger row yet for this label.
func (m *Matcher) Match(ctx context.Context, events []model.NormalizedEvent, lt config.LeadTimeConfig, now time.Time) []model.NormalizedEvent {
	target := now.Add(lt.Lead())
	tolerance := lt.Tolerance()

	var matched []model.NormalizedEvent
	for _, ev := range events {
		diff := ev.Datetime.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			continue
		}

		key := model.ReminderKey{
			EventType:     ev.Type,
			EventID:       ev.ID,
			EventDatetime: ev.Datetime,
			Timing:        lt.Label,
		}
		sent, err := m.ledger.Get(ctx, key)
		if err != nil {
			// Can't tell whether this was already sent; skip rather than
			// risk a duplicate delivery.
			m.logger.Error(err, "ledger lookup failed, skipping event",
				"event_type", ev.Type, "event_id", ev.ID, "timing", lt.Label)
			continue
		}
		if sent != nil {
			m.metrics.RemindersSkipped.Inc()
			continue
		}
		matched = append(matched, ev)
	}
	return matched
}
