package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"smartcart-be/internal/config"
	"smartcart-be/internal/logger"

	"go.uber.org/zap"
)

// Mailer sends transactional mail. Delivery is best effort: callers fire it
// on a goroutine and never block a request on the result.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type smtpMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.host == "" {
		// Mail not configured, e.g. local development.
		logger.FromCtx(ctx).Debug("mail not configured, skipping send",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendAsync delivers on a goroutine and only logs failures.
func SendAsync(m Mailer, to, subject, htmlBody string) {
	go func() {
		if err := m.Send(context.Background(), to, subject, htmlBody); err != nil {
			logger.L().Warn("welcome mail delivery failed",
				zap.String("to", to),
				zap.Error(err),
			)
		}
	}()
}
