package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/example/roadhelper/internal/config"
)

// Mailer sends notification emails.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer creates a mailer from config.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.EmailFrom,
	}
}

// Send delivers one HTML email. A missing SMTP user means mail is not
// configured for this deployment; the send is skipped with a log line.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.username == "" {
		log.Println("[Mail] SMTP credentials not configured, skipping send")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg.String()))
}

// sendAsync dispatches mail on a goroutine so notification failures never
// turn an already-committed write into an error response.
func sendAsync(mailer Mailer, to, subject, htmlBody string) {
	go func() {
		if err := mailer.Send(to, subject, htmlBody); err != nil {
			log.Printf("[Mail] failed to send %q to %s: %v", subject, to, err)
		}
	}()
}
