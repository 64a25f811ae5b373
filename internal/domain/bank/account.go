package domain_bank

import "github.com/shopspring/decimal"

// Account is an owner's balance. Debit never drives the balance below zero;
// only the opening balance or SetBalance can make it negative.
type Account struct {
	owner   string
	balance decimal.Decimal

	// bank is the last Bank this account was registered with. Not owned.
	bank *Bank
}

// NewAccount accepts any owner and any opening balance, negative included.
func NewAccount(owner string, balance decimal.Decimal) *Account {
	return &Account{
		owner:   owner,
		balance: balance,
	}
}

// Debit subtracts amount from the balance. A debit that would leave the
// balance negative is rejected with ErrInsufficientFunds and leaves the
// account untouched.
func (a *Account) Debit(amount decimal.Decimal) error {
	next := a.balance.Sub(amount)
	if next.IsNegative() {
		return ErrInsufficientFunds
	}

	a.balance = next

	return nil
}

// Credit adds amount unconditionally.
func (a *Account) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

// Equal reports whether both accounts have the same owner and numerically
// equal balances. The bank reference is ignored.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}

	return a.owner == other.owner && a.balance.Equal(other.balance)
}

func (a *Account) Owner() string { return a.owner }

func (a *Account) SetOwner(owner string) { a.owner = owner }

func (a *Account) Balance() decimal.Decimal { return a.balance }

// SetBalance overwrites the balance without any check. Debit is the only
// operation that enforces a non-negative balance.
func (a *Account) SetBalance(balance decimal.Decimal) { a.balance = balance }

func (a *Account) Bank() *Bank { return a.bank }
