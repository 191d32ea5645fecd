// Package notify is the outbound notification boundary. Delivery is advisory
// everywhere in the service: callers log failures and never roll back the
// state transition that triggered the send.
package notify

import "context"

// Notifier delivers a single message to a recipient address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
