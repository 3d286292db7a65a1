package ports

import (
	"context"
	"time"
)

// ContactEventKind distinguishes plain contact messages from demo requests.
type ContactEventKind string

const (
	ContactKindMessage ContactEventKind = "contact"
	ContactKindDemo    ContactEventKind = "demo"
)

// ContactEvent is published for every accepted contact or demo-request
// submission. A downstream mailer consumes the queue and sends the email.
type ContactEvent struct {
	ID         string           `json:"id"`
	Kind       ContactEventKind `json:"kind"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	School     string           `json:"school,omitempty"`
	Message    string           `json:"message"`
	ReceivedAt time.Time        `json:"received_at"`
}

// ContactEventPublisher delivers contact events to the message broker.
type ContactEventPublisher interface {
	PublishContactRequested(ctx context.Context, evt ContactEvent) error
}
