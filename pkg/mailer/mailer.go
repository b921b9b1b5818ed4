package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

// Sender provides a testable abstraction over outbound mail.
// Delivery is best effort; callers must not fail their own operation
// when Send returns an error.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type smtpSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		config: config,
		log:    log.With(zap.String("client", "mailer")),
	}
}

func (s *smtpSender) Send(ctx context.Context, recipient, subject, body string) error {
	if s.config.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.config.From, recipient, subject, body)

	if err := smtp.SendMail(addr, auth, s.config.From, []string{recipient}, []byte(msg)); err != nil {
		s.log.Warn("Failed to send email",
			zap.Error(err),
			zap.String("recipient", recipient),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send email to %s: %w", recipient, err)
	}

	return nil
}
