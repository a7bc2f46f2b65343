package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers reset codes over SMTP using gomail.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) SendResetCode(ctx context.Context, recipientEmail, otpCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipientEmail)
	m.SetHeader("Subject", "Your password reset code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your one-time password reset code is %s.\n\nIt expires in 15 minutes. If you did not request a reset, ignore this email.\n",
		otpCode,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("notify: send reset code: %w", err)
	}
	return nil
}
