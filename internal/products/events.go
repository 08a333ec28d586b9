package product

import (
	"context"
	"time"
)

// Event types published after a committed mutation.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// Event describes a catalog mutation. Deleted events carry the image URLs so
// a downstream worker can clean blob storage.
type Event struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Images     []string  `json:"images,omitempty"`
	Product    *Product  `json:"product,omitempty"`
}

// EventPublisher receives product events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// JSONPublisher is the transport used by NewTopicPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, attributes map[string]string, payload any) (string, error)
}

type topicPublisher struct {
	transport JSONPublisher
}

// NewTopicPublisher sends events as JSON messages with type and product_id attributes.
func NewTopicPublisher(transport JSONPublisher) EventPublisher {
	if transport == nil {
		return noopPublisher{}
	}
	return topicPublisher{transport: transport}
}

func (t topicPublisher) Publish(ctx context.Context, event Event) error {
	_, err := t.transport.PublishJSON(ctx, map[string]string{
		"type":       event.Type,
		"product_id": event.ProductID,
	}, event)
	return err
}
