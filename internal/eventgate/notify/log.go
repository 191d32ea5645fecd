package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes messages to the log instead of delivering them. It is
// the default in dev environments where no SMTP relay is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.Logger.Info("notification (log only)",
		"to", to,
		"subject", subject,
		"body_len", len(body),
	)
	return nil
}
