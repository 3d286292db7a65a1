package messaging

import (
	"context"
	"log"

	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// ConsolePublisher logs contact events instead of queueing them. Used in
// local development when no broker is configured.
type ConsolePublisher struct{}

var _ ports.ContactEventPublisher = ConsolePublisher{}

func (ConsolePublisher) PublishContactRequested(ctx context.Context, evt ports.ContactEvent) error {
	log.Printf("contact event %s (%s) from %s <%s>: %s", evt.ID, evt.Kind, evt.Name, evt.Email, evt.Message)
	return nil
}
