// Package mailer sends generated statement archives over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendArchive mails a zip archive of statements as an attachment.
func (m *Mailer) SendArchive(to []string, ledgerName, filename string, archive []byte) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = to
	e.Subject = fmt.Sprintf("Customer statements: %s", ledgerName)
	e.Text = []byte(fmt.Sprintf("Attached are the generated customer statements for %s.", ledgerName))

	if _, err := e.Attach(bytes.NewReader(archive), filename, "application/zip"); err != nil {
		return fmt.Errorf("attach archive: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
