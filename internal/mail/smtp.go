package mail

import (
	"log/slog"

	"gopkg.in/gomail.v2"
)

// SMTP delivers mail over an SMTP relay. It reports success as a boolean:
// the lifecycle only cares whether the message left the building, delivery
// failures are logged here and surfaced as false.
type SMTP struct {
	dialer *gomail.Dialer
}

func NewSMTP(host string, port int, username, password string) *SMTP {
	return &SMTP{dialer: gomail.NewDialer(host, port, username, password)}
}

func (s *SMTP) Send(fromAddr, fromName, toAddr, subject, htmlBody, textBody string) bool {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", fromAddr, fromName)
	m.SetHeader("To", toAddr)
	m.SetHeader("Subject", subject)
	if textBody != "" {
		m.SetBody("text/plain", textBody)
		m.AddAlternative("text/html", htmlBody)
	} else {
		m.SetBody("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		slog.Error("email delivery failed", "to", toAddr, "subject", subject, "error", err)
		return false
	}
	return true
}
