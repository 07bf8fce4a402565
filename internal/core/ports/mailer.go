package ports

import "context"

// Email is a single outbound message with plain-text and HTML bodies.
type Email struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers an email through the transactional mail API. Failures are
// reported as *domain.DispatchError.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ConfirmationEmailer builds the confirmation email for a new account.
type ConfirmationEmailer interface {
	ConfirmationEmail(recipient, invitation string) Email
}
