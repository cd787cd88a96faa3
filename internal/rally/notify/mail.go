package notify

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/rally/pkg/slogx"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single email.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (m *SMTPMailer) SendMail(ctx context.Context, to, subject, body string) error {
	msg := m.compose(to, subject, body)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from(), "Rally"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

func (m *SMTPMailer) from() string {
	if m.From != "" {
		return m.From
	}
	return m.User
}

// LogMailer writes emails to the request logger instead of sending them.
type LogMailer struct{}

func (LogMailer) SendMail(ctx context.Context, to, subject, body string) error {
	slogx.FromContext(ctx).Info("mail (not sent)", "to", to, "subject", subject, "body", body)
	return nil
}
