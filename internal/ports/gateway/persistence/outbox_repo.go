package port_persistence

import "context"

// OutboxMessage is one encoded event waiting to be published. It is written in
// the same unit of work as the receipt that raised it.
type OutboxMessage struct {
	MessageID     string
	EventType     string
	AggregateType string
	AggregateID   string // transfer id, used as the publish key
	CorrelationID string
	Traceparent   string
	Payload       []byte
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
	// DequeueBatch returns up to limit unpublished messages in enqueue order
	// without removing them. A limit of zero or less means no limit.
	DequeueBatch(ctx context.Context, limit int) ([]OutboxMessage, error)
	// MarkPublished drops a message from the queue, or returns ErrNotFound.
	MarkPublished(ctx context.Context, messageID string) error
}
