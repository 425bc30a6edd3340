package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender delivers transactional mail over SMTP. Sends are synchronous: a
// transport failure is returned to the caller, never swallowed.
type Sender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendPasswordReset mails the reset link. The server enforces the ten-minute
// expiry; the body just tells the recipient about it.
func (s *Sender) SendPasswordReset(to, resetURL string) error {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = "Password Reset Request"
	e.Text = []byte(fmt.Sprintf(
		"Click the link below to reset your NoteWorthy account password:\n\n%s\n\n"+
			"This link will expire in 10 minutes. If you did not request this reset, please ignore this email.\n",
		resetURL,
	))

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send password reset email failed: %w", err)
	}
	return nil
}
