package impl_transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/platform"
	port_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/transfer"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shopspring/decimal"
)

type TransferFundsUsecaseImpl struct {
	bank   *domain_bank.Bank
	uow    port_persistence.UnitOfWork
	repo   port_persistence.TransferRepository
	outbx  port_persistence.OutboxRepository
	clock  port_platform.Clock
	ids    port_platform.IDGenerator
	logger log.Logger
}

func NewTransferFundsUsecaseImpl(
	bank *domain_bank.Bank,
	uow port_persistence.UnitOfWork,
	repo port_persistence.TransferRepository,
	outbx port_persistence.OutboxRepository,
	clock port_platform.Clock,
	ids port_platform.IDGenerator,
	logger log.Logger,
) *TransferFundsUsecaseImpl {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &TransferFundsUsecaseImpl{
		bank:   bank,
		uow:    uow,
		repo:   repo,
		outbx:  outbx,
		clock:  clock,
		ids:    ids,
		logger: log.With(logger, "usecase", "transfer_funds"),
	}
}

// Execute moves funds between two accounts of the bank and records a receipt.
// A transfer rejected for insufficient funds is still recorded as FAILED, and
// domain_bank.ErrInsufficientFunds is returned together with the output.
func (u *TransferFundsUsecaseImpl) Execute(ctx context.Context, in port_transfer.TransferFundsInput) (port_transfer.TransferFundsOutput, error) {
	in.FromOwner = strings.TrimSpace(in.FromOwner)
	in.ToOwner = strings.TrimSpace(in.ToOwner)

	amount, err := parseInput(in)
	if err != nil {
		return port_transfer.TransferFundsOutput{}, err
	}

	requestHash := HashTransferFundsInput(in)

	var (
		receipt     *domain_transfer.Transfer
		replayed    bool
		transferErr error
	)

	// The key is looked up inside the unit of work so two requests sharing it
	// cannot both move money.
	err = u.uow.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetByIdempotencyKey(ctx, in.IdempotencyKey)
		switch {
		case err == nil:
			if stored.RequestHash != requestHash {
				return ErrIdempotencyConflict
			}
			receipt, replayed = stored.Transfer, true
			return nil
		case !errors.Is(err, port_persistence.ErrNotFound):
			return fmt.Errorf("lookup idempotency key: %w", err)
		}

		from, ok := u.bank.FindAccount(in.FromOwner)
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, in.FromOwner)
		}

		to, ok := u.bank.FindAccount(in.ToOwner)
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, in.ToOwner)
		}

		now := u.clock.Now()

		receipt, err = domain_transfer.New(domain_transfer.NewParams{
			TransferID:     u.ids.NewUUID(),
			BankName:       u.bank.Name(),
			FromOwner:      in.FromOwner,
			ToOwner:        in.ToOwner,
			Amount:         amount,
			IdempotencyKey: in.IdempotencyKey,
			CorrelationID:  in.CorrelationID,
			Now:            now,
		})
		if err != nil {
			return err
		}

		transferErr = u.bank.Transfer(from, to, amount)
		switch {
		case transferErr == nil:
			err = receipt.Complete(from.Balance(), to.Balance(), now)
		case errors.Is(transferErr, domain_bank.ErrInsufficientFunds):
			err = receipt.Fail(transferErr.Error(), now)
		default:
			return transferErr
		}
		if err != nil {
			return err
		}

		if err := u.repo.Create(ctx, receipt, requestHash); err != nil {
			return fmt.Errorf("store transfer: %w", err)
		}

		for _, ev := range receipt.PullEvents() {
			msg, err := newOutboxMessage(u.ids.NewUUID().String(), ev, receipt, in.Traceparent)
			if err != nil {
				return fmt.Errorf("encode %s: %w", ev.EventName(), err)
			}

			if err := u.outbx.Enqueue(ctx, msg); err != nil {
				return fmt.Errorf("enqueue %s: %w", ev.EventName(), err)
			}
		}

		return nil
	})
	if errors.Is(err, ErrIdempotencyConflict) {
		level.Warn(u.logger).Log("msg", "idempotency key reused with a different payload", "idempotency_key", in.IdempotencyKey)
		return port_transfer.TransferFundsOutput{}, err
	}
	if err != nil {
		level.Error(u.logger).Log("msg", "transfer aborted", "from", in.FromOwner, "to", in.ToOwner, "err", err)
		return port_transfer.TransferFundsOutput{}, err
	}

	if replayed {
		level.Debug(u.logger).Log("msg", "replaying transfer", "transfer_id", receipt.ID(), "idempotency_key", in.IdempotencyKey)
		return replay(receipt)
	}

	out := toOutput(receipt)

	if transferErr != nil {
		level.Warn(u.logger).Log("msg", "transfer rejected", "transfer_id", out.TransferID, "from", in.FromOwner, "amount", amount, "err", transferErr)
		return out, transferErr
	}

	level.Info(u.logger).Log("msg", "transfer completed", "transfer_id", out.TransferID, "from", in.FromOwner, "to", in.ToOwner, "amount", amount)

	return out, nil
}

// parseInput expects owners already trimmed by Execute.
func parseInput(in port_transfer.TransferFundsInput) (decimal.Decimal, error) {
	if in.FromOwner == "" || in.ToOwner == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: from and to owners are required", ErrInvalidInput)
	}

	if strings.TrimSpace(in.IdempotencyKey) == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: idempotency key is required", ErrInvalidInput)
	}

	if strings.TrimSpace(in.CorrelationID) == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: correlation id is required", ErrInvalidInput)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q: %v", ErrInvalidInput, in.Amount, err)
	}

	return amount, nil
}

func replay(t *domain_transfer.Transfer) (port_transfer.TransferFundsOutput, error) {
	out := toOutput(t)
	if t.Status() == domain_transfer.StatusFailed {
		return out, domain_bank.ErrInsufficientFunds
	}

	return out, nil
}

func toOutput(t *domain_transfer.Transfer) port_transfer.TransferFundsOutput {
	out := port_transfer.TransferFundsOutput{
		TransferID:    t.ID().String(),
		FromOwner:     t.FromOwner(),
		ToOwner:       t.ToOwner(),
		Amount:        t.Amount().String(),
		Status:        string(t.Status()),
		FailureReason: t.FailureReason(),
		CreatedAt:     t.CreatedAt(),
		CorrelationID: t.CorrelationID(),
	}

	if t.Status() == domain_transfer.StatusCompleted {
		out.FromBalance = t.FromBalance().String()
		out.ToBalance = t.ToBalance().String()
	}

	return out
}
