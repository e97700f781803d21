package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/vicevalds/carelink/internal/config"
	"github.com/vicevalds/carelink/internal/email"
	activityHandler "github.com/vicevalds/carelink/internal/handler/activity"
	agentHandler "github.com/vicevalds/carelink/internal/handler/agent"
	appointmentHandler "github.com/vicevalds/carelink/internal/handler/appointment"
	examHandler "github.com/vicevalds/carelink/internal/handler/exam"
	healthHandler "github.com/vicevalds/carelink/internal/handler/health"
	interactionHandler "github.com/vicevalds/carelink/internal/handler/interaction"
	medicationHandler "github.com/vicevalds/carelink/internal/handler/medication"
	profileHandler "github.com/vicevalds/carelink/internal/handler/profile"
	"github.com/vicevalds/carelink/internal/iot"
	"github.com/vicevalds/carelink/internal/middleware"
	"github.com/vicevalds/carelink/internal/repository/postgres"
	"github.com/vicevalds/carelink/internal/router"
	interactionService "github.com/vicevalds/carelink/internal/service/interaction"
	profileService "github.com/vicevalds/carelink/internal/service/profile"
	reminderService "github.com/vicevalds/carelink/internal/service/reminder"
	"github.com/vicevalds/carelink/internal/tts"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/messaging"
	"github.com/vicevalds/carelink/pkg/messaging/redis"
	"github.com/vicevalds/carelink/pkg/metrics"
)

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
	examRepo := postgres.NewExamRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)

	profileSvc := profileService.NewService(profileRepo)
	interactionSvc := interactionService.NewService(interactionRepo, broker, logg)

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

	deliverer := iot.NewClient(cfg.IoT.Endpoint, cfg.IoT.Timeout)

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
		Profiles:     profileSvc,
		Interactions: interactionSvc,
		Renderer:     renderer,
		Deliverer:    deliverer,
		Broker:       broker,
		Emails:       emailSvc,
		Metrics:      m,
		Logger:       logg,
	}, cfg.Reminder, cfg.Email.CaregiverEmail)

	engine := router.New(router.Config{
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		CORS:              middleware.DefaultCORSConfig(),
		AudioDir:          cfg.TTS.AudioDir,
		AudioURLBase:      cfg.TTS.URLBase,
	},
		healthHandler.NewHandler(db),
		activityHandler.NewHandler(activityRepo),
		appointmentHandler.NewHandler(appointmentRepo),
		medicationHandler.NewHandler(medicationRepo),
		examHandler.NewHandler(examRepo),
		profileHandler.NewHandler(profileSvc),
		interactionHandler.NewHandler(interactionSvc),
		agentHandler.NewHandler(reminderSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("API server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal(err, "server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logg.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Error(err, "graceful shutdown failed")
	}
}
