package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Implementations are best effort;
// services log failures and move on.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a Sender over a plain SMTP dialer.
func NewSMTPSender(host string, port int, username, password, from string) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
