package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers transactional mail. Handlers depend on this interface
// so tests can substitute a recording stub.
type EmailSender interface {
	SendVerificationCode(email string, code int) error
	SendPasswordReset(email, resetURL string) error
}

// SMTPConfig carries the transport settings for the gomail dialer.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService constructs an SMTP-backed EmailSender.
func NewEmailService(cfg SMTPConfig) EmailSender {
	return &emailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *emailService) SendVerificationCode(email string, code int) error {
	body := fmt.Sprintf(`
		<h2>Verify your BookHive account</h2>
		<p>Your verification code is:</p>
		<h1 style="letter-spacing: 4px;">%06d</h1>
		<p>The code expires shortly. If you did not register, ignore this email.</p>
	`, code)

	if err := s.send(email, "Verification Code (BookHive Library Management System)", body); err != nil {
		return fmt.Errorf("verification code failed to send: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordReset(email, resetURL string) error {
	body := fmt.Sprintf(`
		<h3>Password recovery</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Click the link below to choose a new password:</p>
		<p><a href="%s">%s</a></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, resetURL, resetURL)

	if err := s.send(email, "BookHive - Password Recovery", body); err != nil {
		return fmt.Errorf("recovery email failed to send: %w", err)
	}
	return nil
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
