package notify

import "context"

// Notifier delivers the confirmation link for an email address. It is called
// outside any transaction and its failures are never retried here.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}
