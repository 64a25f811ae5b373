package messaging

import (
	"context"
)

// Header keys set on every published outbox message.
const (
	HeaderMessageID     = "message_id"
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderCorrelationID = "correlation_id"
	HeaderTraceparent   = "traceparent"
)

// Publisher delivers one message to topic. key groups messages that must stay
// ordered, which for transfers is the transfer id.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}
