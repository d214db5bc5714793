package contact

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPSender relays through an authenticated SMTP submission server,
// e.g. smtp.gmail.com:587 with an app password.
type SMTPSender struct {
	host string
	port string
	user string
	pass string

	// sendMail is smtp.SendMail; replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, user, pass string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass, sendMail: smtp.SendMail}
}

// Send ignores ctx beyond an early cancellation check; net/smtp has no
// context support.
func (s *SMTPSender) Send(ctx context.Context, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.user == "" || s.pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	from := msg.From
	if from == "" {
		from = s.user
	}
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := net.JoinHostPort(s.host, s.port)
	if err := s.sendMail(addr, auth, s.user, []string{msg.To}, composeMessage(from, msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// composeMessage writes a plain-text RFC 5322 message.
func composeMessage(from string, msg Email) []byte {
	var b strings.Builder
	header := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(headerValue(v))
		b.WriteString("\r\n")
	}
	header("From", from)
	header("To", msg.To)
	header("Reply-To", msg.ReplyTo)
	header("Subject", msg.Subject)
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Text, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// headerValue drops line breaks so submitted values cannot add headers.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}
