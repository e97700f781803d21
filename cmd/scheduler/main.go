package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/vicevalds/carelink/internal/config"
	"github.com/vicevalds/carelink/internal/email"
	"github.com/vicevalds/carelink/internal/iot"
	"github.com/vicevalds/carelink/internal/repository/postgres"
	interactionService "github.com/vicevalds/carelink/internal/service/interaction"
	profileService "github.com/vicevalds/carelink/internal/service/profile"
	reminderService "github.com/vicevalds/carelink/internal/service/reminder"
	"github.com/vicevalds/carelink/internal/tts"
	"github.com/vicevalds/carelink/internal/worker"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/messaging"
	"github.com/vicevalds/carelink/pkg/messaging/redis"
	"github.com/vicevalds/carelink/pkg/metrics"
)

// setupObservability serves liveness and metrics on a side port so the
// scheduler can run without the API binary.
func setupObservability(logg *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			logg.Error(err, "observability server failed")
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database.ToDBConfig())
	if err != nil {
		logg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &logg.ZL)
		if err != nil {
			logg.Fatal(err, "failed to connect to redis")
		}
	}
	defer broker.Close()

	m := metrics.New("carelink")

	activityRepo := postgres.NewActivityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)

	renderer, err := tts.NewOpenAIRenderer(tts.Config{
		APIKey:   cfg.TTS.APIKey,
		Endpoint: cfg.TTS.Endpoint,
		Model:    cfg.TTS.Model,
		Voice:    cfg.TTS.Voice,
		Speed:    cfg.TTS.Speed,
		Timeout:  cfg.TTS.Timeout,
		AudioDir: cfg.TTS.AudioDir,
		URLBase:  cfg.TTS.URLBase,
	}, logg)
	if err != nil {
		logg.Fatal(err, "failed to initialize speech renderer")
	}

	var emailSvc email.Service = email.NopService{}
	if cfg.Email.Enabled {
		emailSvc = email.NewService(email.Config{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUser:     cfg.Email.SMTPUser,
			SMTPPassword: cfg.Email.SMTPPassword,
			From:         cfg.Email.From,
		})
	}

	source := reminderService.NewEventSource(
		activityRepo, appointmentRepo, medicationRepo,
		reminderService.NewHourIntervalParser(),
		cfg.Reminder.Lookahead, cfg.Reminder.DoseAnchorHour, logg,
	)
	reminderSvc := reminderService.NewService(reminderService.Deps{
		Source:       source,
		Matcher:      reminderService.NewMatcher(reminderRepo, m, logg),
		Overdue:      reminderService.NewOverdueMonitor(reminderRepo, cfg.Reminder.EscalationInterval, logg),
		Ledger:       reminderRepo,
		Medications:  medicationRepo,
		Profiles:     profileService.NewService(profileRepo),
		Interactions: interactionService.NewService(interactionRepo, broker, logg),
		Renderer:     renderer,
		Deliverer:    iot.NewClient(cfg.IoT.Endpoint, cfg.IoT.Timeout),
		Broker:       broker,
		Emails:       emailSvc,
		Metrics:      m,
		Logger:       logg,
	}, cfg.Reminder, cfg.Email.CaregiverEmail)

	setupObservability(logg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logg.Info("shutting down")
		cancel()
	}()

	w := worker.NewReminderWorker(reminderSvc, cfg.Reminder.TickInterval, m, logg)
	w.Start(ctx)
}
