package domain_transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTransferRequested = "transfer.requested"
	EventTransferCompleted = "transfer.completed"
	EventTransferFailed    = "transfer.failed"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	CorrelationID() string
}

// EventMeta is embedded by every transfer event.
type EventMeta struct {
	At          time.Time
	TransferID  uuid.UUID
	Correlation string
}

func (m EventMeta) OccurredAt() time.Time { return m.At }

func (m EventMeta) AggregateID() uuid.UUID { return m.TransferID }

func (m EventMeta) CorrelationID() string { return m.Correlation }

type TransferRequested struct {
	EventMeta
	BankName       string
	FromOwner      string
	ToOwner        string
	Amount         decimal.Decimal
	IdempotencyKey string
}

func (TransferRequested) EventName() string { return EventTransferRequested }

type TransferCompleted struct {
	EventMeta
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

func (TransferCompleted) EventName() string { return EventTransferCompleted }

type TransferFailed struct {
	EventMeta
	Reason string
}

func (TransferFailed) EventName() string { return EventTransferFailed }
