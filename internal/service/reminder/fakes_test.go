package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/tts"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/metrics"
)

// Shared across the package's tests: registering the same collectors
// twice panics.
var testMetrics = metrics.New("test")

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
}

func ledgerKey(key model.ReminderKey) string {
	return fmt.Sprintf("%s|%d|%d|%s",
		key.EventType, key.EventID, key.EventDatetime.Unix(), key.Timing)
}

// fakeLedger is an in-memory stand-in for the sent_reminders table. Its
// MarkSent mimics the insert-once conflict behavior.
type fakeLedger struct {
	mu       sync.Mutex
	rows     map[string]*model.SentReminder
	overdue  []*model.OverdueMedication
	toccnfrm *model.ConfirmedReminder

	getErr    error
	markErr   error
	markCalls []model.ReminderKey
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[string]*model.SentReminder)}
}

func (f *fakeLedger) Get(ctx context.Context, key model.ReminderKey) (*model.SentReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows[ledgerKey(key)], nil
}

func (f *fakeLedger) MarkSent(ctx context.Context, key model.ReminderKey, audioPath *string, status model.DeliveryStatus, errMessage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.markCalls = append(f.markCalls, key)
	k := ledgerKey(key)
	if _, exists := f.rows[k]; exists {
		return nil
	}
	f.rows[k] = &model.SentReminder{
		EventType:            key.EventType,
		EventID:              key.EventID,
		EventDatetime:        key.EventDatetime,
		ReminderTiming:       key.Timing,
		AudioFilePath:        audioPath,
		Status:               status,
		ErrorMessage:         errMessage,
		RequiresConfirmation: key.EventType == model.EventTypeMedication,
		SentAt:               time.Now(),
	}
	return nil
}

func (f *fakeLedger) FindOverdueMedications(ctx context.Context, now time.Time) ([]*model.OverdueMedication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overdue, nil
}

func (f *fakeLedger) LastEscalationAt(ctx context.Context, eventID int64, eventDatetime time.Time) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var last *time.Time
	for _, row := range f.rows {
		if row.EventID != eventID || !row.EventDatetime.Equal(eventDatetime) {
			continue
		}
		if !model.IsEscalationTiming(row.ReminderTiming) {
			continue
		}
		sentAt := row.SentAt
		if last == nil || sentAt.After(*last) {
			last = &sentAt
		}
	}
	return last, nil
}

func (f *fakeLedger) CountEscalations(ctx context.Context, eventID int64, eventDatetime time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if row.EventID == eventID && row.EventDatetime.Equal(eventDatetime) &&
			model.IsEscalationTiming(row.ReminderTiming) {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) ConfirmMostRecent(ctx context.Context, now time.Time) (*model.ConfirmedReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toccnfrm == nil {
		return nil, nil
	}
	for _, row := range f.rows {
		if row.EventID == f.toccnfrm.EventID && row.EventDatetime.Equal(f.toccnfrm.EventDatetime) {
			row.Confirmed = true
			confirmedAt := now
			row.ConfirmedAt = &confirmedAt
		}
	}
	confirmed := f.toccnfrm
	f.toccnfrm = nil
	return confirmed, nil
}

// fakeRenderer returns a canned artifact, or fails when told to.
type fakeRenderer struct {
	fail  bool
	texts []string
}

func (f *fakeRenderer) Render(ctx context.Context, text string) (*tts.Artifact, error) {
	if f.fail {
		return nil, errors.New("synthesis unavailable")
	}
	f.texts = append(f.texts, text)
	return &tts.Artifact{
		Path:     "/tmp/audio/test.mp3",
		Filename: "test.mp3",
		URL:      "/uploads/audio/test.mp3",
	}, nil
}

type fakeDeliverer struct {
	fail  bool
	paths []string
}

func (f *fakeDeliverer) Send(ctx context.Context, artifactPath string) error {
	if f.fail {
		return errors.New("device unreachable")
	}
	f.paths = append(f.paths, artifactPath)
	return nil
}

type fakeEmail struct {
	alerts int
	lastTo string
}

func (f *fakeEmail) SendEscalationAlert(ctx context.Context, to, medicationName, dosage string, due time.Time, escalations int) error {
	f.alerts++
	f.lastTo = to
	return nil
}

func (f *fakeEmail) SendCustom(ctx context.Context, to, subject, content string) error {
	return nil
}

// Storage fakes for event sourcing. Only the read paths the scheduler
// touches return data.

type fakeActivityRepo struct {
	activities []*model.Activity
	err        error
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *model.Activity) error { return nil }
func (f *fakeActivityRepo) Get(ctx context.Context, id int64) (*model.Activity, error) {
	return nil, nil
}
func (f *fakeActivityRepo) Update(ctx context.Context, a *model.Activity) error { return nil }
func (f *fakeActivityRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (f *fakeActivityRepo) List(ctx context.Context) ([]*model.Activity, error) {
	return f.activities, f.err
}
func (f *fakeActivityRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Activity, error) {
	return f.activities, f.err
}

type fakeAppointmentRepo struct {
	appointments []*model.Appointment
	err          error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Update(ctx context.Context, a *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error             { return nil }
func (f *fakeAppointmentRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	return f.appointments, f.err
}
func (f *fakeAppointmentRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	return f.appointments, f.err
}

type fakeMedicationRepo struct {
	medications []*model.Medication
	err         error
	doses       []int64
}

func (f *fakeMedicationRepo) Create(ctx context.Context, m *model.Medication) error { return nil }
func (f *fakeMedicationRepo) Get(ctx context.Context, id int64) (*model.Medication, error) {
	return nil, nil
}
func (f *fakeMedicationRepo) Update(ctx context.Context, m *model.Medication) error { return nil }
func (f *fakeMedicationRepo) Delete(ctx context.Context, id int64) error            { return nil }
func (f *fakeMedicationRepo) List(ctx context.Context) ([]*model.Medication, error) {
	return f.medications, f.err
}
func (f *fakeMedicationRepo) ListActive(ctx context.Context) ([]*model.Medication, error) {
	return f.medications, f.err
}
func (f *fakeMedicationRepo) LogDose(ctx context.Context, medicationID int64, takenAt time.Time) error {
	f.doses = append(f.doses, medicationID)
	return nil
}

type fakeProfileRepo struct {
	profile *model.Profile
}

func (f *fakeProfileRepo) Get(ctx context.Context) (*model.Profile, error) {
	if f.profile == nil {
		return nil, errors.New("no profile")
	}
	return f.profile, nil
}
func (f *fakeProfileRepo) Upsert(ctx context.Context, p *model.Profile) error { return nil }

type fakeInteractionRepo struct {
	mu           sync.Mutex
	interactions []*model.Interaction
}

func (f *fakeInteractionRepo) Create(ctx context.Context, i *model.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interactions = append(f.interactions, i)
	return nil
}
func (f *fakeInteractionRepo) List(ctx context.Context, limit int) ([]*model.Interaction, error) {
	return f.interactions, nil
}
func (f *fakeInteractionRepo) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Interaction, error) {
	return f.interactions, nil
}
