// Package logpub is a messaging.Publisher that writes every message to a
// go-kit logger. It stands in for a broker in single-process deployments.
package logpub

import (
	"context"

	"github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/messaging"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type Publisher struct {
	logger log.Logger
}

func New(logger log.Logger) *Publisher {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Publisher{logger: log.With(logger, "component", "publisher")}
}

func (p *Publisher) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return level.Info(p.logger).Log(
		"msg", "published",
		"topic", topic,
		"key", key,
		"event_type", headers[messaging.HeaderEventType],
		"correlation_id", headers[messaging.HeaderCorrelationID],
		"payload", string(payload),
	)
}
