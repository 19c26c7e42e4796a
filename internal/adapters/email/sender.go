// Package email delivers outbound mail through an external provider.
package email

import (
	"context"
	"time"
)

// SendRequest is one message to deliver.
type SendRequest struct {
	To      []string
	From    string // overrides the sender's default when set
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// SendResult is the provider's acknowledgement.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers mail.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
