package ports

import "context"

// EmailDispatcher delivers outbound mail. Implementations must return an
// error when delivery cannot be confirmed so callers can roll back work that
// depends on the message reaching the recipient.
type EmailDispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}
