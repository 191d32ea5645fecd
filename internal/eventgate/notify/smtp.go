package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier delivers mail through a plain SMTP relay.
type SMTPNotifier struct {
	Addr   string // host:port of the relay
	Sender string // From address
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.Sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(n.Addr, nil, n.Sender, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("notify: smtp send: %w", err)
	}
	return nil
}
