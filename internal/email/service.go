package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail for booking lifecycle changes.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, doctorName, slotDate, slotTime string) error
	SendCancellation(ctx context.Context, to, doctorName, slotDate, slotTime string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(_ context.Context, to, doctorName, slotDate, slotTime string) error {
	subject := "Appointment booked"
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s is confirmed.",
		doctorName, slotDate, slotTime,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendCancellation(_ context.Context, to, doctorName, slotDate, slotTime string) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s has been cancelled.",
		doctorName, slotDate, slotTime,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NewNoopService returns a Service that drops all mail. Used when SMTP is
// not configured.
func NewNoopService() Service {
	return noopService{}
}

type noopService struct{}

func (noopService) SendBookingConfirmation(context.Context, string, string, string, string) error {
	return nil
}

func (noopService) SendCancellation(context.Context, string, string, string, string) error {
	return nil
}
