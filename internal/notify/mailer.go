// Package notify sends the transactional emails triggered by a
// registration: a welcome message to the student and a sign-up alert
// (with the full students CSV attached) to the admin mailbox.
//
// Sending is decoupled from the registration write. The handler commits
// the student first and then enqueues messages on an Outbox, which
// retries failed sends with backoff in the background. A mail outage
// therefore delays notifications but never blocks or rolls back a
// registration.
package notify

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/spacbotltd/spacbot-api/internal/config"
)

// Kind labels the two message types this system sends.
type Kind string

const (
	KindWelcome    Kind = "welcome"
	KindAdminAlert Kind = "admin_alert"
)

// Attachment is an optional file carried by a Message. Only the admin
// alert uses one (the CSV export).
type Attachment struct {
	Filename string
	Data     []byte
}

// Message is one outbound plain-text email.
type Message struct {
	Kind       Kind
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Mailer delivers a single message. The SMTP implementation below is
// used in production; tests substitute a fake.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends mail through the configured relay. Each Send dials,
// authenticates, submits, and disconnects — one login per send, no
// connection pooling. At this registration volume that is fine.
type SMTPMailer struct {
	cfg config.SMTP
}

// NewSMTPMailer builds a mailer from the SMTP section of the config.
func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message over an authenticated, encrypted session.
// gomail uses implicit TLS when the port is 465 (the default here) and
// STARTTLS otherwise.
func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.Username, m.cfg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if msg.Attachment != nil {
		data := msg.Attachment.Data
		gm.Attach(msg.Attachment.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(gm); err != nil {
		return fmt.Errorf("send %s to %s: %w", msg.Kind, msg.To, err)
	}
	return nil
}
