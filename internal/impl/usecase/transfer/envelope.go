package impl_transfer

import (
	"encoding/json"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
)

const (
	schemaVersion = 1
	producer      = "core-bank-accounts"
	aggregateType = "Transfer"
)

type envelope struct {
	Meta envelopeMeta `json:"meta"`
	Data envelopeData `json:"data"`
}

type envelopeMeta struct {
	SchemaVersion int       `json:"schema_version"`
	MessageID     string    `json:"message_id"`
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	Producer      string    `json:"producer"`
	CorrelationID string    `json:"correlation_id"`
	Traceparent   string    `json:"traceparent,omitempty"`
}

type envelopeData struct {
	TransferID  string `json:"transfer_id"`
	Bank        string `json:"bank"`
	FromOwner   string `json:"from_owner"`
	ToOwner     string `json:"to_owner"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	FromBalance string `json:"from_balance,omitempty"`
	ToBalance   string `json:"to_balance,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func eventType(ev domain_transfer.DomainEvent) string {
	switch ev.(type) {
	case domain_transfer.TransferCompleted:
		return "TransferCompleted"
	case domain_transfer.TransferFailed:
		return "TransferFailed"
	default:
		return "TransferRequested"
	}
}

func newOutboxMessage(messageID string, ev domain_transfer.DomainEvent, t *domain_transfer.Transfer, traceparent string) (port_persistence.OutboxMessage, error) {
	env := envelope{
		Meta: envelopeMeta{
			SchemaVersion: schemaVersion,
			MessageID:     messageID,
			EventType:     eventType(ev),
			OccurredAt:    ev.OccurredAt(),
			Producer:      producer,
			CorrelationID: ev.CorrelationID(),
			Traceparent:   traceparent,
		},
		Data: envelopeData{
			TransferID: t.ID().String(),
			Bank:       t.BankName(),
			FromOwner:  t.FromOwner(),
			ToOwner:    t.ToOwner(),
			Amount:     t.Amount().String(),
			Status:     string(t.Status()),
			Reason:     t.FailureReason(),
		},
	}

	if t.Status() == domain_transfer.StatusCompleted {
		env.Data.FromBalance = t.FromBalance().String()
		env.Data.ToBalance = t.ToBalance().String()
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return port_persistence.OutboxMessage{}, err
	}

	return port_persistence.OutboxMessage{
		MessageID:     messageID,
		EventType:     env.Meta.EventType,
		AggregateType: aggregateType,
		AggregateID:   ev.AggregateID().String(),
		CorrelationID: ev.CorrelationID(),
		Traceparent:   traceparent,
		Payload:       payload,
	}, nil
}
