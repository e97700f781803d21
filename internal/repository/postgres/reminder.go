package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vicevalds/carelink/internal/model"
)

func (r *reminderRepository) Get(ctx context.Context, key model.ReminderKey) (*model.SentReminder, error) {
	query := `
		SELECT id, event_type, event_id, event_datetime, reminder_timing,
		       audio_file_path, status, error_message, requires_confirmation,
		       confirmed, confirmed_at, sent_at
		FROM sent_reminders
		WHERE event_type = $1 AND event_id = $2 AND event_datetime = $3 AND reminder_timing = $4
	`
	var reminder model.SentReminder
	err := r.db.GetContext(ctx, &reminder, query, key.EventType, key.EventID, key.EventDatetime, key.Timing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sent reminder: %w", err)
	}
	return &reminder, nil
}

// MarkSent records a notification attempt. Duplicate attempts for the
// same key are swallowed by the unique constraint; the first writer wins
// and later calls are no-ops.
func (r *reminderRepository) MarkSent(ctx context.Context, key model.ReminderKey, audioPath *string, status model.DeliveryStatus, errMessage *string) error {
	query := `
		INSERT INTO sent_reminders
			(event_type, event_id, event_datetime, reminder_timing,
			 audio_file_path, status, error_message, requires_confirmation, confirmed, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9)
		ON CONFLICT (event_type, event_id, event_datetime, reminder_timing) DO NOTHING
	`
	requiresConfirmation := key.EventType == model.EventTypeMedication

	_, err := r.db.ExecContext(ctx, query,
		key.EventType,
		key.EventID,
		key.EventDatetime,
		key.Timing,
		audioPath,
		status,
		errMessage,
		requiresConfirmation,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark reminder as sent: %w", err)
	}
	return nil
}

func (r *reminderRepository) FindOverdueMedications(ctx context.Context, now time.Time) ([]*model.OverdueMedication, error) {
	query := `
		SELECT DISTINCT sr.event_id, sr.event_datetime, m.name, m.dosage
		FROM sent_reminders sr
		JOIN medications m ON m.id = sr.event_id
		WHERE sr.event_type = $1
		AND sr.reminder_timing = $2
		AND sr.requires_confirmation = true
		AND sr.confirmed = false
		AND sr.event_datetime < $3
		ORDER BY sr.event_datetime DESC
	`
	overdue := []*model.OverdueMedication{}
	err := r.db.SelectContext(ctx, &overdue, query, model.EventTypeMedication, model.TimingAtTime, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue medications: %w", err)
	}
	return overdue, nil
}

// Escalation rows carry sequenced labels (post_due_1, post_due_2, ...)
// so that every escalation is its own append-only ledger row under the
// unique key constraint.
func (r *reminderRepository) LastEscalationAt(ctx context.Context, eventID int64, eventDatetime time.Time) (*time.Time, error) {
	query := `
		SELECT MAX(sent_at)
		FROM sent_reminders
		WHERE event_type = $1
		AND event_id = $2
		AND event_datetime = $3
		AND reminder_timing LIKE $4
	`
	var lastSent sql.NullTime
	err := r.db.GetContext(ctx, &lastSent, query, model.EventTypeMedication, eventID, eventDatetime, model.TimingPostDue+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to get last escalation time: %w", err)
	}
	if !lastSent.Valid {
		return nil, nil
	}
	return &lastSent.Time, nil
}

func (r *reminderRepository) CountEscalations(ctx context.Context, eventID int64, eventDatetime time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sent_reminders
		WHERE event_type = $1
		AND event_id = $2
		AND event_datetime = $3
		AND reminder_timing LIKE $4
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, model.EventTypeMedication, eventID, eventDatetime, model.TimingPostDue+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to count escalations: %w", err)
	}
	return count, nil
}

// ConfirmMostRecent resolves the latest due-and-unconfirmed medication
// reminder. All ledger rows for that (event_id, event_datetime) collapse
// to one confirmation regardless of lead time. The conditional update
// keeps concurrent confirmations from clobbering each other.
func (r *reminderRepository) ConfirmMostRecent(ctx context.Context, now time.Time) (*model.ConfirmedReminder, error) {
	selectQuery := `
		SELECT sr.event_id, sr.event_datetime, m.name
		FROM sent_reminders sr
		JOIN medications m ON m.id = sr.event_id
		WHERE sr.event_type = $1
		AND sr.requires_confirmation = true
		AND sr.confirmed = false
		AND sr.event_datetime <= $2
		ORDER BY sr.event_datetime DESC
		LIMIT 1
	`
	var pending model.ConfirmedReminder
	err := r.db.GetContext(ctx, &pending, selectQuery, model.EventTypeMedication, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pending medication reminder: %w", err)
	}

	updateQuery := `
		UPDATE sent_reminders
		SET confirmed = true, confirmed_at = $1
		WHERE event_type = $2
		AND event_id = $3
		AND event_datetime = $4
		AND requires_confirmation = true
		AND confirmed = false
	`
	result, err := r.db.ExecContext(ctx, updateQuery, now, model.EventTypeMedication, pending.EventID, pending.EventDatetime)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm medication reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Another confirmation beat us to it.
		return nil, nil
	}
	return &pending, nil
}
