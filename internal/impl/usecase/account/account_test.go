package impl_account_test

import (
	"context"
	"errors"
	"testing"

	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	impl_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/account"
	gwmocks "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/mocks"
	port_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/account"

	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*impl_account.AccountUsecaseImpl, *domain_bank.Bank, *gwmocks.MockUnitOfWork) {
	t.Helper()

	ctrl := gomock.NewController(t)
	uow := gwmocks.NewMockUnitOfWork(ctrl)
	uow.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	bank := domain_bank.NewBank("National Bank")

	return impl_account.NewAccountUsecaseImpl(bank, uow, nil), bank, uow
}

func TestAccount_Open(t *testing.T) {
	t.Run("registers the account with the bank", func(t *testing.T) {
		svc, bank, _ := newService(t)

		out, err := svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro", Balance: "1000.12345"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if out.Owner != "Pedro" || out.Balance != "1000.12345" || out.BankName != "National Bank" {
			t.Errorf("unexpected output %+v", out)
		}

		account, ok := bank.FindAccount("Pedro")
		if !ok {
			t.Fatal("expected Pedro to be registered")
		}

		if account.Bank() != bank {
			t.Error("expected back-reference to the bank")
		}
	})

	t.Run("trims the owner and finds it padded or not", func(t *testing.T) {
		svc, bank, _ := newService(t)

		out, err := svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "  Pedro ", Balance: "10"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Owner != "Pedro" {
			t.Errorf("expected owner Pedro, got %q", out.Owner)
		}
		if _, ok := bank.FindAccount("Pedro"); !ok {
			t.Fatal("expected Pedro to be registered without padding")
		}

		if _, err := svc.Get(context.Background(), "Pedro "); err != nil {
			t.Errorf("expected padded lookup to succeed, got %v", err)
		}

		got, err := svc.Credit(context.Background(), port_account.MoveFundsInput{Owner: " Pedro", Amount: "5"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Balance != "15" {
			t.Errorf("expected balance 15, got %s", got.Balance)
		}

		_, err = svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro\t", Balance: "1"})
		if !errors.Is(err, impl_account.ErrAccountExists) {
			t.Errorf("expected ErrAccountExists for padded duplicate, got %v", err)
		}
	})

	t.Run("accepts a negative opening balance", func(t *testing.T) {
		svc, _, _ := newService(t)

		out, err := svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro", Balance: "-5"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if out.Balance != "-5" {
			t.Errorf("expected balance -5, got %s", out.Balance)
		}
	})

	t.Run("rejects a duplicate owner", func(t *testing.T) {
		svc, bank, _ := newService(t)
		_, _ = svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro", Balance: "1"})

		_, err := svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro", Balance: "2"})
		if !errors.Is(err, impl_account.ErrAccountExists) {
			t.Fatalf("expected ErrAccountExists, got %v", err)
		}

		if bank.Len() != 1 {
			t.Errorf("expected 1 account, got %d", bank.Len())
		}
	})

	invalid := []struct {
		name string
		in   port_account.OpenAccountInput
	}{
		{name: "blank owner", in: port_account.OpenAccountInput{Owner: " ", Balance: "1"}},
		{name: "bad balance", in: port_account.OpenAccountInput{Owner: "Pedro", Balance: "1,5"}},
		{name: "empty balance", in: port_account.OpenAccountInput{Owner: "Pedro"}},
	}

	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			svc, bank, _ := newService(t)

			_, err := svc.Open(context.Background(), tt.in)
			if !errors.Is(err, impl_account.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}

			if bank.Len() != 0 {
				t.Errorf("expected no accounts, got %d", bank.Len())
			}
		})
	}
}

func TestAccount_DebitCredit(t *testing.T) {
	open := func(t *testing.T) *impl_account.AccountUsecaseImpl {
		t.Helper()

		svc, _, _ := newService(t)
		if _, err := svc.Open(context.Background(), port_account.OpenAccountInput{Owner: "Pedro", Balance: "1000.12345"}); err != nil {
			t.Fatalf("open: %v", err)
		}

		return svc
	}

	t.Run("debit", func(t *testing.T) {
		svc := open(t)

		out, err := svc.Debit(context.Background(), port_account.MoveFundsInput{Owner: "Pedro", Amount: "100"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if out.Balance != "900.12345" {
			t.Errorf("expected balance 900.12345, got %s", out.Balance)
		}
	})

	t.Run("credit", func(t *testing.T) {
		svc := open(t)

		out, err := svc.Credit(context.Background(), port_account.MoveFundsInput{Owner: "Pedro", Amount: "100"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if out.Balance != "1100.12345" {
			t.Errorf("expected balance 1100.12345, got %s", out.Balance)
		}
	})

	t.Run("overdraft surfaces insufficient funds", func(t *testing.T) {
		svc := open(t)

		_, err := svc.Debit(context.Background(), port_account.MoveFundsInput{Owner: "Pedro", Amount: "1500"})
		if !errors.Is(err, domain_bank.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		got, err := svc.Get(context.Background(), "Pedro")
		if err != nil {
			t.Fatalf("get: %v", err)
		}

		if got.Balance != "1000.12345" {
			t.Errorf("expected balance 1000.12345, got %s", got.Balance)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := open(t)

		_, err := svc.Credit(context.Background(), port_account.MoveFundsInput{Owner: "Nobody", Amount: "1"})
		if !errors.Is(err, impl_account.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("bad amount", func(t *testing.T) {
		svc := open(t)

		_, err := svc.Debit(context.Background(), port_account.MoveFundsInput{Owner: "Pedro", Amount: "abc"})
		if !errors.Is(err, impl_account.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestAccount_ListAndBank(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, in := range []port_account.OpenAccountInput{
		{Owner: "Juan Pedro", Balance: "2500"},
		{Owner: "Diego", Balance: "1500.8989"},
	} {
		if _, err := svc.Open(ctx, in); err != nil {
			t.Fatalf("open %s: %v", in.Owner, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(list) != 2 || list[0].Owner != "Juan Pedro" || list[1].Owner != "Diego" {
		t.Fatalf("unexpected list %+v", list)
	}

	info, err := svc.Bank(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if info.Name != "National Bank" || info.Accounts != 2 {
		t.Errorf("unexpected bank info %+v", info)
	}
}

func TestAccount_UnitOfWorkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := gwmocks.NewMockUnitOfWork(ctrl)
	boom := errors.New("boom")
	uow.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(boom)

	svc := impl_account.NewAccountUsecaseImpl(domain_bank.NewBank("National Bank"), uow, nil)

	if _, err := svc.Get(context.Background(), "Pedro"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
