package repository

import (
	"context"
	"time"

	"github.com/vicevalds/carelink/internal/model"
)

// All repository interfaces in one file
type (
	ActivityRepository interface {
		Create(ctx context.Context, activity *model.Activity) error
		Get(ctx context.Context, id int64) (*model.Activity, error)
		Update(ctx context.Context, activity *model.Activity) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Activity, error)
		ListBetween(ctx context.Context, from, to time.Time) ([]*model.Activity, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id int64) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Medication, error)
		ListActive(ctx context.Context) ([]*model.Medication, error)
		LogDose(ctx context.Context, medicationID int64, takenAt time.Time) error
	}

	ExamRepository interface {
		Create(ctx context.Context, exam *model.Exam) error
		Get(ctx context.Context, id int64) (*model.Exam, error)
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Exam, error)
	}

	ProfileRepository interface {
		Get(ctx context.Context) (*model.Profile, error)
		Upsert(ctx context.Context, profile *model.Profile) error
	}

	InteractionRepository interface {
		Create(ctx context.Context, interaction *model.Interaction) error
		List(ctx context.Context, limit int) ([]*model.Interaction, error)
		ListByCategory(ctx context.Context, category string, limit int) ([]*model.Interaction, error)
	}

	// ReminderRepository is the idempotency ledger for sent notifications.
	// The unique constraint on (event_type, event_id, event_datetime,
	// reminder_timing) is the authoritative guard against duplicates.
	ReminderRepository interface {
		Get(ctx context.Context, key model.ReminderKey) (*model.SentReminder, error)
		MarkSent(ctx context.Context, key model.ReminderKey, audioPath *string, status model.DeliveryStatus, errMessage *string) error
		FindOverdueMedications(ctx context.Context, now time.Time) ([]*model.OverdueMedication, error)
		LastEscalationAt(ctx context.Context, eventID int64, eventDatetime time.Time) (*time.Time, error)
		CountEscalations(ctx context.Context, eventID int64, eventDatetime time.Time) (int, error)
		ConfirmMostRecent(ctx context.Context, now time.Time) (*model.ConfirmedReminder, error)
	}
)
