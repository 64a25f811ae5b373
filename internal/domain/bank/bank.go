package domain_bank

import "github.com/shopspring/decimal"

// Bank keeps an ordered list of accounts and moves money between them.
// It is not safe for concurrent use; callers sharing a Bank must serialize
// access themselves.
type Bank struct {
	name     string
	accounts []*Account
}

func NewBank(name string) *Bank {
	return &Bank{name: name}
}

// AddAccount appends a to the bank and points its back-reference here.
// Adding the same account twice yields two entries.
func (b *Bank) AddAccount(a *Account) {
	a.bank = b
	b.accounts = append(b.accounts, a)
}

// Transfer debits from and then credits to. If the debit fails, to is never
// credited and the error is returned as is.
func (b *Bank) Transfer(from, to *Account, amount decimal.Decimal) error {
	if err := from.Debit(amount); err != nil {
		return err
	}

	to.Credit(amount)

	return nil
}

// FindAccount returns the first registered account held by owner.
func (b *Bank) FindAccount(owner string) (*Account, bool) {
	for _, a := range b.accounts {
		if a.owner == owner {
			return a, true
		}
	}

	return nil, false
}

func (b *Bank) Name() string { return b.name }

func (b *Bank) SetName(name string) { b.name = name }

// Accounts returns a copy of the account list in registration order.
func (b *Bank) Accounts() []*Account {
	out := make([]*Account, len(b.accounts))
	copy(out, b.accounts)

	return out
}

func (b *Bank) Len() int { return len(b.accounts) }
