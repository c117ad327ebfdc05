// Package mail delivers transactional email.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/domodwyer/mailyak/v3"
)

// Sender delivers a single plain-text message.
type Sender interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// Mailer sends mail through an SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// New creates a Mailer for the given relay. Authentication is only attempted
// when username is set.
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendMail sends a plain-text message and waits for the relay to accept it.
// A cancelled context abandons the wait.
func (m *Mailer) SendMail(ctx context.Context, to, subject, body string) error {
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	mail := mailyak.New(net.JoinHostPort(m.host, strconv.Itoa(m.port)), auth)
	mail.To(to)
	mail.From(m.from)
	mail.Subject(subject)
	mail.Plain().Set(body)

	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
	}

	slog.Info("mail sent", "subject", subject)
	return nil
}

// LogSender writes messages to the log instead of delivering them. It is
// used when no SMTP relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog.Default.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// SendMail logs the message. The body is only emitted at debug level.
func (s *LogSender) SendMail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "mail delivery disabled, message not sent", "subject", subject)
	s.logger.DebugContext(ctx, "undelivered mail", "to", to, "subject", subject, "body", body)
	return nil
}
