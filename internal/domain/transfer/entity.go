package domain_transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is the receipt of one transfer attempt between two accounts of a
// bank. The money movement itself is done by domain_bank.Bank; the receipt
// only records its outcome.
type Transfer struct {
	id uuid.UUID

	bankName  string
	fromOwner string
	toOwner   string
	amount    decimal.Decimal

	status         Status
	idempotencyKey string
	correlationID  string

	fromBalance   decimal.Decimal
	toBalance     decimal.Decimal
	failureReason string

	createdAt time.Time
	updatedAt time.Time

	pendingEvents []DomainEvent
}

type NewParams struct {
	TransferID     uuid.UUID
	BankName       string
	FromOwner      string
	ToOwner        string
	Amount         decimal.Decimal
	IdempotencyKey string
	CorrelationID  string
	Now            time.Time
}

func New(p NewParams) (*Transfer, error) {
	if p.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}

	if strings.TrimSpace(p.FromOwner) == "" || strings.TrimSpace(p.ToOwner) == "" {
		return nil, ErrMissingOwner
	}

	if strings.TrimSpace(p.IdempotencyKey) == "" {
		return nil, ErrMissingIdempotencyKey
	}

	if strings.TrimSpace(p.CorrelationID) == "" {
		return nil, ErrMissingCorrelationID
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	t := &Transfer{
		id:             p.TransferID,
		bankName:       p.BankName,
		fromOwner:      p.FromOwner,
		toOwner:        p.ToOwner,
		amount:         p.Amount,
		status:         StatusPending,
		idempotencyKey: p.IdempotencyKey,
		correlationID:  p.CorrelationID,
		createdAt:      p.Now,
		updatedAt:      p.Now,
	}

	t.raise(TransferRequested{
		EventMeta:      t.meta(p.Now),
		BankName:       t.bankName,
		FromOwner:      t.fromOwner,
		ToOwner:        t.toOwner,
		Amount:         t.amount,
		IdempotencyKey: t.idempotencyKey,
	})

	return t, nil
}

// Complete records the balances both accounts were left with.
func (t *Transfer) Complete(fromBalance, toBalance decimal.Decimal, now time.Time) error {
	now, err := t.prepareSettle(StatusCompleted, now)
	if err != nil {
		return err
	}

	t.status = StatusCompleted
	t.fromBalance = fromBalance
	t.toBalance = toBalance
	t.updatedAt = now

	t.raise(TransferCompleted{
		EventMeta:   t.meta(now),
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	})

	return nil
}

// Fail records why the bank rejected the transfer.
func (t *Transfer) Fail(failureReason string, now time.Time) error {
	now, err := t.prepareSettle(StatusFailed, now)
	if err != nil {
		return err
	}

	failureReason = strings.TrimSpace(failureReason)
	if failureReason == "" {
		return ErrMissingFailureReason
	}

	t.status = StatusFailed
	t.failureReason = failureReason
	t.updatedAt = now

	t.raise(TransferFailed{
		EventMeta: t.meta(now),
		Reason:    failureReason,
	})

	return nil
}

// prepareSettle checks that the receipt may move to next and returns the
// timestamp to stamp it with.
func (t *Transfer) prepareSettle(next Status, now time.Time) (time.Time, error) {
	if t.status.IsFinal() {
		return now, ErrAlreadyFinalized
	}

	if !t.status.CanTransitionTo(next) {
		return now, ErrInvalidStateTransition
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return now, nil
}

// PullEvents hands over the events raised since the last call.
func (t *Transfer) PullEvents() []DomainEvent {
	if len(t.pendingEvents) == 0 {
		return nil
	}

	ev := make([]DomainEvent, len(t.pendingEvents))
	copy(ev, t.pendingEvents)

	t.pendingEvents = t.pendingEvents[:0]

	return ev
}

func (t *Transfer) meta(at time.Time) EventMeta {
	return EventMeta{At: at, TransferID: t.id, Correlation: t.correlationID}
}

func (t *Transfer) raise(event DomainEvent) {
	t.pendingEvents = append(t.pendingEvents, event)
}

func (t *Transfer) ID() uuid.UUID { return t.id }

func (t *Transfer) BankName() string { return t.bankName }

func (t *Transfer) FromOwner() string { return t.fromOwner }

func (t *Transfer) ToOwner() string { return t.toOwner }

func (t *Transfer) Amount() decimal.Decimal { return t.amount }

func (t *Transfer) Status() Status { return t.status }

func (t *Transfer) IdempotencyKey() string { return t.idempotencyKey }

func (t *Transfer) CorrelationID() string { return t.correlationID }

func (t *Transfer) FromBalance() decimal.Decimal { return t.fromBalance }

func (t *Transfer) ToBalance() decimal.Decimal { return t.toBalance }

func (t *Transfer) FailureReason() string { return t.failureReason }

func (t *Transfer) CreatedAt() time.Time { return t.createdAt }

func (t *Transfer) UpdatedAt() time.Time { return t.updatedAt }
