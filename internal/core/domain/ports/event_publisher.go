package ports

import "context"

// EventPublisher publishes a payload to the broker under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}
