// Package mail sends transactional e-mails.
package mail

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers account verification codes.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Hoppon Account Verification")
	msg.SetBody("text/html", fmt.Sprintf(
		`<h1 style="text-align: center; color:magenta;">Welcome to Hoppon!</h1>
<p style="text-align: center;">Your verification code is: <strong>%s</strong></p>
<p>code will expire in 10 minutes</p>`, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// LogMailer writes codes to the server log instead of sending mail. Used when
// SMTP is not configured (development, tests).
type LogMailer struct{}

func (LogMailer) SendVerificationCode(to, code string) error {
	log.Printf("mail: verification code for %s: %s", to, code)
	return nil
}
