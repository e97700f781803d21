package reminder

import (
	"context"
	"time"

	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
	"github.com/vicevalds/carelink/pkg/logger"
)

// OverdueMonitor finds medication doses whose at_time reminder went out
// but was never confirmed, and gates re-notification to the escalation
// cadence. Escalations repeat indefinitely; confirmation is the only
// terminal state.
type OverdueMonitor struct {
	ledger   repository.ReminderRepository
	interval time.Duration
	logger   *logger.Logger
}

func NewOverdueMonitor(ledger repository.ReminderRepository, interval time.Duration, logger *logger.Logger) *OverdueMonitor {
	return &OverdueMonitor{ledger: ledger, interval: interval, logger: logger}
}

// Due returns the overdue doses ready for another escalation at now.
func (m *OverdueMonitor) Due(ctx context.Context, now time.Time) ([]*model.OverdueMedication, error) {
	overdue, err := m.ledger.FindOverdueMedications(ctx, now)
	if err != nil {
		return nil, err
	}

	var due []*model.OverdueMedication
	for _, med := range overdue {
		lastSent, err := m.ledger.LastEscalationAt(ctx, med.EventID, med.EventDatetime)
		if err != nil {
			m.logger.Error(err, "failed to check last escalation, skipping",
				"event_id", med.EventID)
			continue
		}
		if lastSent != nil && now.Sub(*lastSent) < m.interval {
			continue
		}
		due = append(due, med)
	}
	return due, nil
}
