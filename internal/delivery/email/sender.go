// Package email delivers follow-up messages over SMTP.
package email

import "context"

// Sender delivers a rendered follow-up message to a lead.
type Sender interface {
	SendFollowUp(ctx context.Context, toEmail, subject, body string) error
}

// NoopSender is used when email delivery is disabled. Sends succeed
// silently so the scheduler still advances through its actions.
type NoopSender struct{}

// SendFollowUp does nothing.
func (NoopSender) SendFollowUp(ctx context.Context, toEmail, subject, body string) error {
	return nil
}

var _ Sender = NoopSender{}
