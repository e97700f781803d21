package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type Service interface {
	SendEscalationAlert(ctx context.Context, to, medicationName, dosage string, due time.Time, escalations int) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	From         string
}

type service struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	return &service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *service) SendEscalationAlert(ctx context.Context, to, medicationName, dosage string, due time.Time, escalations int) error {
	subject := fmt.Sprintf("Medicamento sin confirmar: %s", medicationName)
	med := medicationName
	if dosage != "" {
		med += ", " + dosage
	}
	content := fmt.Sprintf(
		"El medicamento %s programado para las %s sigue sin confirmación después de %d recordatorios. Por favor verifica que todo esté bien.",
		med, due.Format("15:04"), escalations,
	)
	return s.SendCustom(ctx, to, subject, content)
}

func (s *service) SendCustom(ctx context.Context, to string, subject string, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NopService is used when email alerting is disabled.
type NopService struct{}

func (NopService) SendEscalationAlert(ctx context.Context, to, medicationName, dosage string, due time.Time, escalations int) error {
	return nil
}

func (NopService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	return nil
}
