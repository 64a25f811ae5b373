package impl_account

import (
	"context"
	"fmt"
	"strings"

	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
	port_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/account"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shopspring/decimal"
)

// AccountUsecaseImpl serializes every access to the bank through uow, since
// domain_bank types carry no locking of their own.
type AccountUsecaseImpl struct {
	bank   *domain_bank.Bank
	uow    port_persistence.UnitOfWork
	logger log.Logger
}

func NewAccountUsecaseImpl(bank *domain_bank.Bank, uow port_persistence.UnitOfWork, logger log.Logger) *AccountUsecaseImpl {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &AccountUsecaseImpl{
		bank:   bank,
		uow:    uow,
		logger: log.With(logger, "usecase", "account"),
	}
}

// Open registers a new account. Unlike Bank.AddAccount it refuses a second
// account for the same owner, because owners address accounts here.
func (u *AccountUsecaseImpl) Open(ctx context.Context, in port_account.OpenAccountInput) (port_account.AccountOutput, error) {
	in.Owner = strings.TrimSpace(in.Owner)
	if in.Owner == "" {
		return port_account.AccountOutput{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	balance, err := parseAmount("balance", in.Balance)
	if err != nil {
		return port_account.AccountOutput{}, err
	}

	var out port_account.AccountOutput
	err = u.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, ok := u.bank.FindAccount(in.Owner); ok {
			return fmt.Errorf("%w: %s", ErrAccountExists, in.Owner)
		}

		account := domain_bank.NewAccount(in.Owner, balance)
		u.bank.AddAccount(account)
		out = toOutput(account)

		return nil
	})
	if err != nil {
		return port_account.AccountOutput{}, err
	}

	level.Info(u.logger).Log("msg", "account opened", "owner", out.Owner, "balance", out.Balance)

	return out, nil
}

func (u *AccountUsecaseImpl) Debit(ctx context.Context, in port_account.MoveFundsInput) (port_account.AccountOutput, error) {
	return u.move(ctx, "debit", in, func(a *domain_bank.Account, amount decimal.Decimal) error {
		return a.Debit(amount)
	})
}

func (u *AccountUsecaseImpl) Credit(ctx context.Context, in port_account.MoveFundsInput) (port_account.AccountOutput, error) {
	return u.move(ctx, "credit", in, func(a *domain_bank.Account, amount decimal.Decimal) error {
		a.Credit(amount)
		return nil
	})
}

func (u *AccountUsecaseImpl) move(ctx context.Context, op string, in port_account.MoveFundsInput, apply func(*domain_bank.Account, decimal.Decimal) error) (port_account.AccountOutput, error) {
	amount, err := parseAmount("amount", in.Amount)
	if err != nil {
		return port_account.AccountOutput{}, err
	}

	var out port_account.AccountOutput
	err = u.uow.WithinTx(ctx, func(ctx context.Context) error {
		account, err := u.find(in.Owner)
		if err != nil {
			return err
		}

		if err := apply(account, amount); err != nil {
			return err
		}

		out = toOutput(account)

		return nil
	})
	if err != nil {
		level.Warn(u.logger).Log("msg", op+" rejected", "owner", in.Owner, "amount", amount, "err", err)
		return port_account.AccountOutput{}, err
	}

	level.Info(u.logger).Log("msg", op+" applied", "owner", out.Owner, "amount", amount, "balance", out.Balance)

	return out, nil
}

func (u *AccountUsecaseImpl) Get(ctx context.Context, owner string) (port_account.AccountOutput, error) {
	var out port_account.AccountOutput
	err := u.uow.WithinTx(ctx, func(ctx context.Context) error {
		account, err := u.find(owner)
		if err != nil {
			return err
		}

		out = toOutput(account)

		return nil
	})

	return out, err
}

func (u *AccountUsecaseImpl) List(ctx context.Context) ([]port_account.AccountOutput, error) {
	var out []port_account.AccountOutput
	err := u.uow.WithinTx(ctx, func(ctx context.Context) error {
		accounts := u.bank.Accounts()
		out = make([]port_account.AccountOutput, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, toOutput(a))
		}

		return nil
	})

	return out, err
}

func (u *AccountUsecaseImpl) Bank(ctx context.Context) (port_account.BankOutput, error) {
	var out port_account.BankOutput
	err := u.uow.WithinTx(ctx, func(ctx context.Context) error {
		out = port_account.BankOutput{Name: u.bank.Name(), Accounts: u.bank.Len()}
		return nil
	})

	return out, err
}

// find looks owner up with surrounding whitespace removed, the same way Open
// stores it.
func (u *AccountUsecaseImpl) find(owner string) (*domain_bank.Account, error) {
	owner = strings.TrimSpace(owner)
	account, ok := u.bank.FindAccount(owner)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, owner)
	}

	return account, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidInput, field, raw, err)
	}

	return d, nil
}

func toOutput(a *domain_bank.Account) port_account.AccountOutput {
	out := port_account.AccountOutput{
		Owner:   a.Owner(),
		Balance: a.Balance().String(),
	}

	if b := a.Bank(); b != nil {
		out.BankName = b.Name()
	}

	return out
}
