package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
	"github.com/vicevalds/carelink/pkg/logger"
)

// EventSource reads candidate schedulable entities and normalizes them
// into a common shape. A read failure for one entity type only drops
// that type for the current pass.
type EventSource struct {
	activities   repository.ActivityRepository
	appointments repository.AppointmentRepository
	medications  repository.MedicationRepository
	parser       FrequencyParser

	lookahead  time.Duration
	anchorHour int

	logger *logger.Logger
	now    func() time.Time
}

func NewEventSource(
	activities repository.ActivityRepository,
	appointments repository.AppointmentRepository,
	medications repository.MedicationRepository,
	parser FrequencyParser,
	lookahead time.Duration,
	anchorHour int,
	logger *logger.Logger,
) *EventSource {
	return &EventSource{
		activities:   activities,
		appointments: appointments,
		medications:  medications,
		parser:       parser,
		lookahead:    lookahead,
		anchorHour:   anchorHour,
		logger:       logger,
		now:          time.Now,
	}
}

// UpcomingEvents returns all normalized events within the lookahead
// window, freshly read from storage.
func (s *EventSource) UpcomingEvents(ctx context.Context) []model.NormalizedEvent {
	now := s.now()
	events := make([]model.NormalizedEvent, 0, 16)

	events = append(events, s.activityEvents(ctx, now)...)
	events = append(events, s.appointmentEvents(ctx, now)...)
	events = append(events, s.medicationEvents(ctx, now)...)

	return events
}

func (s *EventSource) activityEvents(ctx context.Context, now time.Time) []model.NormalizedEvent {
	from := truncateToDay(now)
	activities, err := s.activities.ListBetween(ctx, from, from.Add(s.lookahead))
	if err != nil {
		s.logger.Error(err, "failed to read activities, skipping type for this pass")
		return nil
	}

	events := make([]model.NormalizedEvent, 0, len(activities))
	for _, a := range activities {
		if a.Time == nil || *a.Time == "" {
			// No due instant, nothing to match against.
			continue
		}
		dt, ok := combineDateTime(a.Date, *a.Time, now.Location())
		if !ok {
			s.logger.Warn("skipping activity with unparsable time",
				"activity_id", a.ID, "time", *a.Time)
			continue
		}
		events = append(events, model.NormalizedEvent{
			Type:     model.EventTypeActivity,
			ID:       a.ID,
			Datetime: dt,
			Payload: model.EventPayload{
				Title: a.Title,
				Time:  *a.Time,
			},
		})
	}
	return events
}

func (s *EventSource) appointmentEvents(ctx context.Context, now time.Time) []model.NormalizedEvent {
	from := truncateToDay(now)
	appointments, err := s.appointments.ListScheduledBetween(ctx, from, from.Add(s.lookahead))
	if err != nil {
		s.logger.Error(err, "failed to read appointments, skipping type for this pass")
		return nil
	}

	events := make([]model.NormalizedEvent, 0, len(appointments))
	for _, a := range appointments {
		dt, ok := combineDateTime(a.Date, a.Time, now.Location())
		if !ok {
			s.logger.Warn("skipping appointment with unparsable time",
				"appointment_id", a.ID, "time", a.Time)
			continue
		}
		events = append(events, model.NormalizedEvent{
			Type:     model.EventTypeAppointment,
			ID:       a.ID,
			Datetime: dt,
			Payload: model.EventPayload{
				Doctor: a.Doctor,
				Time:   a.Time,
			},
		})
	}
	return events
}

// medicationEvents synthesizes dose instants for today from the anchor
// hour, repeating every parsed interval. Only future instants are kept;
// doses already past are not re-synthesized after a restart.
func (s *EventSource) medicationEvents(ctx context.Context, now time.Time) []model.NormalizedEvent {
	medications, err := s.medications.ListActive(ctx)
	if err != nil {
		s.logger.Error(err, "failed to read medications, skipping type for this pass")
		return nil
	}

	events := make([]model.NormalizedEvent, 0, len(medications))
	for _, med := range medications {
		if med.Frequency == "" {
			continue
		}
		freq, err := s.parser.Parse(med.Frequency)
		if err != nil {
			s.logger.Debug("skipping medication with unparsable frequency",
				"medication_id", med.ID, "frequency", med.Frequency)
			continue
		}

		for _, dose := range s.doseTimes(now, freq) {
			events = append(events, model.NormalizedEvent{
				Type:     model.EventTypeMedication,
				ID:       med.ID,
				Datetime: dose,
				Payload: model.EventPayload{
					Name:   med.Name,
					Dosage: med.Dosage,
					Time:   dose.Format("15:04"),
				},
			})
		}
	}
	return events
}

func (s *EventSource) doseTimes(now time.Time, freq Frequency) []time.Time {
	today := truncateToDay(now)
	var times []time.Time
	for hour := s.anchorHour; hour < 24; hour += freq.IntervalHours {
		dose := today.Add(time.Duration(hour) * time.Hour)
		if dose.After(now) {
			times = append(times, dose)
		}
	}
	return times
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// combineDateTime merges a stored date with a free-text wall-clock time.
// Accepted forms: "15:04", "3:04 PM", "03:04pm".
func combineDateTime(date time.Time, timeStr string, loc *time.Location) (time.Time, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(timeStr))

	var parsed time.Time
	var err error
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM"} {
		parsed, err = time.Parse(layout, normalized)
		if err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, loc), true
		}
	}
	return time.Time{}, false
}
