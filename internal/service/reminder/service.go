package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/vicevalds/carelink/internal/config"
	"github.com/vicevalds/carelink/internal/email"
	"github.com/vicevalds/carelink/internal/iot"
	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
	"github.com/vicevalds/carelink/internal/service/interaction"
	"github.com/vicevalds/carelink/internal/service/profile"
	"github.com/vicevalds/carelink/internal/tts"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/messaging"
	"github.com/vicevalds/carelink/pkg/metrics"
)

// confirmationKeywords are the phrases the voice pipeline recognizes as
// a medication intake confirmation.
var confirmationKeywords = []string{
	"confirmación", "confirmacion", "confirmo", "listo",
	"tomé", "tome", "ya tomé", "ya tome", "si tomé", "si tome",
	"ok", "hecho",
}

// Service drives each due event through compose, render, deliver and
// ledger write, and owns the confirmation mutation invoked by the voice
// pipeline.
type Service struct {
	source  *EventSource
	matcher *Matcher
	overdue *OverdueMonitor

	ledger      repository.ReminderRepository
	medications repository.MedicationRepository

	profiles     *profile.Service
	interactions *interaction.Service
	renderer     tts.Renderer
	deliverer    iot.Deliverer
	broker       messaging.Broker
	emails       email.Service

	cfg            config.ReminderConfig
	caregiverEmail string

	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

type Deps struct {
	Source       *EventSource
	Matcher      *Matcher
	Overdue      *OverdueMonitor
	Ledger       repository.ReminderRepository
	Medications  repository.MedicationRepository
	Profiles     *profile.Service
	Interactions *interaction.Service
	Renderer     tts.Renderer
	Deliverer    iot.Deliverer
	Broker       messaging.Broker
	Emails       email.Service
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
}

func NewService(deps Deps, cfg config.ReminderConfig, caregiverEmail string) *Service {
	return &Service{
		source:         deps.Source,
		matcher:        deps.Matcher,
		overdue:        deps.Overdue,
		ledger:         deps.Ledger,
		medications:    deps.Medications,
		profiles:       deps.Profiles,
		interactions:   deps.Interactions,
		renderer:       deps.Renderer,
		deliverer:      deps.Deliverer,
		broker:         deps.Broker,
		emails:         deps.Emails,
		cfg:            cfg,
		caregiverEmail: caregiverEmail,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

// RunCheck is one full scheduler pass: every configured lead-time window
// followed by the overdue-medication monitor. Each item's pipeline
// failure is isolated; the pass always walks everything.
func (s *Service) RunCheck(ctx context.Context) {
	now := s.now()
	prof := s.profiles.Get(ctx)
	events := s.source.UpcomingEvents(ctx)

	s.logger.Debug("reminder check started",
		"events", len(events), "lead_times", len(s.cfg.LeadTimes))

	for _, lt := range s.cfg.LeadTimes {
		matched := s.matcher.Match(ctx, events, lt, now)
		for _, ev := range matched {
			if err := s.process(ctx, ev, lt.Label, prof); err != nil {
				s.logger.Error(err, "reminder pipeline failed",
					"event_type", ev.Type, "event_id", ev.ID, "timing", lt.Label)
			}
		}
	}

	s.runEscalations(ctx, now, prof)
}

func (s *Service) runEscalations(ctx context.Context, now time.Time, prof *model.Profile) {
	due, err := s.overdue.Due(ctx, now)
	if err != nil {
		s.logger.Error(err, "failed to find overdue medications")
		return
	}

	for _, med := range due {
		count, err := s.ledger.CountEscalations(ctx, med.EventID, med.EventDatetime)
		if err != nil {
			s.logger.Error(err, "failed to count escalations", "event_id", med.EventID)
			continue
		}

		ev := model.NormalizedEvent{
			Type:     model.EventTypeMedication,
			ID:       med.EventID,
			Datetime: med.EventDatetime,
			Payload: model.EventPayload{
				Name:   med.Name,
				Dosage: med.Dosage,
			},
		}
		timing := model.EscalationTiming(count + 1)
		if err := s.process(ctx, ev, timing, prof); err != nil {
			s.logger.Error(err, "escalation pipeline failed",
				"event_id", med.EventID, "timing", timing)
			continue
		}
		s.metrics.EscalationsSent.Inc()

		if s.caregiverEmail != "" && count+1 == s.cfg.EscalationEmailThreshold {
			if err := s.emails.SendEscalationAlert(ctx, s.caregiverEmail,
				med.Name, med.Dosage, med.EventDatetime, count+1); err != nil {
				s.logger.Error(err, "failed to send caregiver alert", "event_id", med.EventID)
			}
		}
	}
}

// process runs one event through the notification pipeline. The ledger
// row is written whether delivery succeeded or failed; it is what keeps
// the event from matching again.
func (s *Service) process(ctx context.Context, ev model.NormalizedEvent, timing string, prof *model.Profile) error {
	key := model.ReminderKey{
		EventType:     ev.Type,
		EventID:       ev.ID,
		EventDatetime: ev.Datetime,
		Timing:        timing,
	}

	message := Compose(ev.Type, ev.Payload, timing, prof)

	renderStart := s.now()
	artifact, err := s.renderer.Render(ctx, message)
	s.metrics.RenderDuration.Observe(time.Since(renderStart).Seconds())
	if err != nil {
		s.markFailed(ctx, key, nil, err)
		return err
	}

	deliverStart := s.now()
	err = s.deliverer.Send(ctx, artifact.Path)
	s.metrics.DeliveryDuration.Observe(time.Since(deliverStart).Seconds())
	if err != nil {
		s.markFailed(ctx, key, &artifact.Path, err)
		return err
	}

	if err := s.ledger.MarkSent(ctx, key, &artifact.Path, model.DeliveryStatusSent, nil); err != nil {
		// Delivery already happened; the missing row means the event may
		// fire again next pass. Nothing safe to do but log it.
		s.logger.Error(err, "failed to record sent reminder",
			"event_type", ev.Type, "event_id", ev.ID, "timing", timing)
	}

	s.broadcast(ctx, message, artifact.URL, ev)
	s.interactions.Log(ctx, "reminder_sent",
		"Recordatorio automático: "+message, ev, "system")
	s.metrics.RemindersProcessed.WithLabelValues(string(ev.Type), timing).Inc()

	return nil
}

func (s *Service) markFailed(ctx context.Context, key model.ReminderKey, artifactPath *string, cause error) {
	detail := cause.Error()
	if err := s.ledger.MarkSent(ctx, key, artifactPath, model.DeliveryStatusFailed, &detail); err != nil {
		s.logger.Error(err, "failed to record failed reminder",
			"event_type", key.EventType, "event_id", key.EventID, "timing", key.Timing)
	}
	s.metrics.RemindersFailed.WithLabelValues(string(key.EventType), key.Timing).Inc()
}

func (s *Service) broadcast(ctx context.Context, text, audioURL string, ev model.NormalizedEvent) {
	payload := model.AgentResponse{
		Text:      text,
		AudioURL:  audioURL,
		Timestamp: s.now(),
		Type:      "reminder",
		EventID:   ev.ID,
	}
	if err := s.broker.Publish(ctx, model.ChannelAgentResponse, payload); err != nil {
		s.logger.Warn("failed to broadcast reminder", "error", err.Error())
	}
}

// ConfirmFromTranscript applies the voice confirmation contract: if the
// transcription contains a confirmation phrase, the most recent due and
// unconfirmed medication reminder is confirmed, collapsing every lead
// time for that due instant.
func (s *Service) ConfirmFromTranscript(ctx context.Context, transcript string) (*model.ConfirmedReminder, error) {
	if !ContainsConfirmation(transcript) {
		return nil, nil
	}

	confirmed, err := s.ledger.ConfirmMostRecent(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		return nil, nil
	}

	if err := s.medications.LogDose(ctx, confirmed.EventID, s.now()); err != nil {
		s.logger.Error(err, "failed to log confirmed dose", "medication_id", confirmed.EventID)
	}

	s.metrics.ConfirmationsTotal.Inc()
	s.interactions.Log(ctx, "medication_confirmed",
		"Medicamento confirmado: "+confirmed.Name, confirmed, "agent")

	return confirmed, nil
}

// ContainsConfirmation reports whether a transcription carries one of
// the recognized confirmation phrases.
func ContainsConfirmation(transcript string) bool {
	lowered := strings.ToLower(transcript)
	for _, kw := range confirmationKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
