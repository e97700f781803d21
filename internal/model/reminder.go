package model

import (
	"fmt"
	"strings"
	"time"
)

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// Timing labels with fixed semantics. Lead-time labels themselves come
// from configuration, but at_time anchors the confirmation flow and
// post_due prefixes escalation rows.
const (
	TimingAtTime  = "at_time"
	TimingPostDue = "post_due"
)

// EscalationTiming builds the sequenced label for the nth escalation of
// an unconfirmed dose. Each escalation gets its own ledger row under the
// unique key constraint.
func EscalationTiming(seq int) string {
	return fmt.Sprintf("%s_%d", TimingPostDue, seq)
}

// IsEscalationTiming reports whether a ledger timing label marks a
// post-due escalation.
func IsEscalationTiming(timing string) bool {
	return strings.HasPrefix(timing, TimingPostDue)
}

// ReminderKey identifies one (event, lead-time) notification. The ledger
// table carries a unique constraint on exactly these four columns.
type ReminderKey struct {
	EventType     EventType
	EventID       int64
	EventDatetime time.Time
	Timing        string
}

// SentReminder is one ledger row. Rows are insert-once per key; only the
// confirmation fields are ever mutated afterwards.
type SentReminder struct {
	ID                   int64          `db:"id" json:"id"`
	EventType            EventType      `db:"event_type" json:"event_type"`
	EventID              int64          `db:"event_id" json:"event_id"`
	EventDatetime        time.Time      `db:"event_datetime" json:"event_datetime"`
	ReminderTiming       string         `db:"reminder_timing" json:"reminder_timing"`
	AudioFilePath        *string        `db:"audio_file_path" json:"audio_file_path,omitempty"`
	Status               DeliveryStatus `db:"status" json:"status"`
	ErrorMessage         *string        `db:"error_message" json:"error_message,omitempty"`
	RequiresConfirmation bool           `db:"requires_confirmation" json:"requires_confirmation"`
	Confirmed            bool           `db:"confirmed" json:"confirmed"`
	ConfirmedAt          *time.Time     `db:"confirmed_at" json:"confirmed_at,omitempty"`
	SentAt               time.Time      `db:"sent_at" json:"sent_at"`
}

func (r *SentReminder) Key() ReminderKey {
	return ReminderKey{
		EventType:     r.EventType,
		EventID:       r.EventID,
		EventDatetime: r.EventDatetime,
		Timing:        r.ReminderTiming,
	}
}

// OverdueMedication is a medication dose whose at_time reminder went out
// but was never confirmed.
type OverdueMedication struct {
	EventID       int64     `db:"event_id" json:"event_id"`
	EventDatetime time.Time `db:"event_datetime" json:"event_datetime"`
	Name          string    `db:"name" json:"name"`
	Dosage        string    `db:"dosage" json:"dosage"`
}

// ConfirmedReminder reports what a confirmation signal resolved.
type ConfirmedReminder struct {
	EventID       int64     `db:"event_id" json:"event_id"`
	EventDatetime time.Time `db:"event_datetime" json:"event_datetime"`
	Name          string    `db:"name" json:"name"`
}
