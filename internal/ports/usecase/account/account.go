package port_account

import "context"

type OpenAccountInput struct {
	Owner   string
	Balance string
}

type MoveFundsInput struct {
	Owner  string
	Amount string
}

type AccountOutput struct {
	Owner    string
	Balance  string
	BankName string
}

type BankOutput struct {
	Name     string
	Accounts int
}

type AccountUseCase interface {
	Open(ctx context.Context, in OpenAccountInput) (AccountOutput, error)
	Debit(ctx context.Context, in MoveFundsInput) (AccountOutput, error)
	Credit(ctx context.Context, in MoveFundsInput) (AccountOutput, error)
	Get(ctx context.Context, owner string) (AccountOutput, error)
	List(ctx context.Context) ([]AccountOutput, error)
	Bank(ctx context.Context) (BankOutput, error)
}
