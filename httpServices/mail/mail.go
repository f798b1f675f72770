package mail

import (
	"fmt"
	"net/smtp"
	"os"
)

// Sender delivers transactional mail through the configured SMTP relay.
type Sender struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSender reads the SMTP_* environment variables.
func NewSender() *Sender {
	return &Sender{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USERNAME"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

// SendOTP mails a verification code. Callers treat delivery failure as
// non-fatal; the issued code stays valid either way.
func (s *Sender) SendOTP(to, code string) error {
	if s.host == "" {
		return fmt.Errorf("SMTP_HOST is not set")
	}

	subject := "Your Room Rescue verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body))

	addr := s.host + ":" + s.port
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
