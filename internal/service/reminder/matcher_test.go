package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicevalds/carelink/internal/config"
	"github.com/vicevalds/carelink/internal/model"
)

func leadTime(label string, lead, tolerance int) config.LeadTimeConfig {
	return config.LeadTimeConfig{Label: label, LeadMinutes: lead, ToleranceMinutes: tolerance}
}

func TestMatcherToleranceBand(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 44, 0, 0, time.UTC)
	lt := leadTime("15_min_before", 15, 2)

	tests := []struct {
		name      string
		eventTime time.Time
		want      bool
	}{
		{name: "exact target", eventTime: now.Add(15 * time.Minute), want: true},
		{name: "one minute late", eventTime: now.Add(16 * time.Minute), want: true},
		{name: "at tolerance edge", eventTime: now.Add(17 * time.Minute), want: true},
		{name: "beyond tolerance", eventTime: now.Add(18 * time.Minute), want: false},
		{name: "one minute early", eventTime: now.Add(14 * time.Minute), want: true},
		{name: "too early", eventTime: now.Add(12 * time.Minute), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(newFakeLedger(), testMetrics, testLogger())
			events := []model.NormalizedEvent{{
				Type:     model.EventTypeAppointment,
				ID:       1,
				Datetime: tt.eventTime,
			}}

			matched := m.Match(context.Background(), events, lt, now)
			if tt.want {
				assert.Len(t, matched, 1)
			} else {
				assert.Empty(t, matched)
			}
		})
	}
}

// A 14:00 appointment checked at 13:44 falls inside the 15-minute
// window's tolerance band.
func TestMatcherFifteenMinuteScenario(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 44, 0, 0, time.UTC)
	event := model.NormalizedEvent{
		Type:     model.EventTypeAppointment,
		ID:       7,
		Datetime: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}

	m := NewMatcher(newFakeLedger(), testMetrics, testLogger())
	matched := m.Match(context.Background(), []model.NormalizedEvent{event}, leadTime("15_min_before", 15, 2), now)
	require.Len(t, matched, 1)
	assert.Equal(t, int64(7), matched[0].ID)
}

func TestMatcherSuppressesAlreadySent(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 44, 0, 0, time.UTC)
	event := model.NormalizedEvent{
		Type:     model.EventTypeMedication,
		ID:       3,
		Datetime: now.Add(15 * time.Minute),
	}
	lt := leadTime("15_min_before", 15, 2)

	ledger := newFakeLedger()
	require.NoError(t, ledger.MarkSent(context.Background(), model.ReminderKey{
		EventType:     event.Type,
		EventID:       event.ID,
		EventDatetime: event.Datetime,
		Timing:        lt.Label,
	}, nil, model.DeliveryStatusSent, nil))

	m := NewMatcher(ledger, testMetrics, testLogger())
	matched := m.Match(context.Background(), []model.NormalizedEvent{event}, lt, now)
	assert.Empty(t, matched)
}

// A failed delivery still wrote a ledger row, so the same window never
// retries it.
func TestMatcherSuppressesFailedAttempt(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 44, 0, 0, time.UTC)
	event := model.NormalizedEvent{
		Type:     model.EventTypeActivity,
		ID:       9,
		Datetime: now.Add(15 * time.Minute),
	}
	lt := leadTime("15_min_before", 15, 2)

	ledger := newFakeLedger()
	errMsg := "device unreachable"
	require.NoError(t, ledger.MarkSent(context.Background(), model.ReminderKey{
		EventType:     event.Type,
		EventID:       event.ID,
		EventDatetime: event.Datetime,
		Timing:        lt.Label,
	}, nil, model.DeliveryStatusFailed, &errMsg))

	m := NewMatcher(ledger, testMetrics, testLogger())
	matched := m.Match(context.Background(), []model.NormalizedEvent{event}, lt, now)
	assert.Empty(t, matched)
}

func TestMatcherSkipsOnLedgerError(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 44, 0, 0, time.UTC)
	ledger := newFakeLedger()
	ledger.getErr = errors.New("connection reset")

	m := NewMatcher(ledger, testMetrics, testLogger())
	matched := m.Match(context.Background(), []model.NormalizedEvent{{
		Type:     model.EventTypeMedication,
		ID:       4,
		Datetime: now.Add(15 * time.Minute),
	}}, leadTime("15_min_before", 15, 2), now)
	assert.Empty(t, matched)
}

func TestMatcherIndependentWindows(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	event := model.NormalizedEvent{
		Type:     model.EventTypeAppointment,
		ID:       5,
		Datetime: now.Add(time.Hour),
	}
	ledger := newFakeLedger()
	m := NewMatcher(ledger, testMetrics, testLogger())

	matched := m.Match(context.Background(), []model.NormalizedEvent{event}, leadTime("1_hour_before", 60, 2), now)
	assert.Len(t, matched, 1)

	// Same instant is out of band for the other windows.
	matched = m.Match(context.Background(), []model.NormalizedEvent{event}, leadTime("15_min_before", 15, 2), now)
	assert.Empty(t, matched)
	matched = m.Match(context.Background(), []model.NormalizedEvent{event}, leadTime("at_time", 0, 2), now)
	assert.Empty(t, matched)
}
